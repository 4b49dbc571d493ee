package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"casemall_v1_202608/internal/model"
)

// ==================== MainCategoryRepository 一级分类仓库 ====================

// MainCategoryRepository 一级分类仓库接口
type MainCategoryRepository interface {
	Create(ctx context.Context, cat *model.MainCategory) error
	GetByID(ctx context.Context, id int64) (*model.MainCategory, error)
	List(ctx context.Context) ([]model.MainCategory, error)
	ListActive(ctx context.Context) ([]model.MainCategory, error)
	Update(ctx context.Context, cat *model.MainCategory) error
	Delete(ctx context.Context, id int64) error
}

type mainCategoryRepository struct {
	db *gorm.DB
}

// NewMainCategoryRepository 创建一级分类仓库
func NewMainCategoryRepository(db *gorm.DB) MainCategoryRepository {
	return &mainCategoryRepository{db: db}
}

func (r *mainCategoryRepository) Create(ctx context.Context, cat *model.MainCategory) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *mainCategoryRepository) GetByID(ctx context.Context, id int64) (*model.MainCategory, error) {
	var cat model.MainCategory
	err := r.db.WithContext(ctx).First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cat, err
}

// List 后台列表，按 ID 倒序
func (r *mainCategoryRepository) List(ctx context.Context) ([]model.MainCategory, error) {
	var cats []model.MainCategory
	err := r.db.WithContext(ctx).Order("id DESC").Find(&cats).Error
	return cats, err
}

// ListActive 前台列表，只返回启用的分类
func (r *mainCategoryRepository) ListActive(ctx context.Context) ([]model.MainCategory, error) {
	var cats []model.MainCategory
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&cats).Error
	return cats, err
}

func (r *mainCategoryRepository) Update(ctx context.Context, cat *model.MainCategory) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *mainCategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.MainCategory{}, id).Error
}

// ==================== SubCategoryRepository 二级分类仓库 ====================

// SubCategoryRepository 二级分类仓库接口
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *model.SubCategory) error
	GetByID(ctx context.Context, id int64) (*model.SubCategory, error)
	ListByMain(ctx context.Context, mainID int64) ([]model.SubCategory, error)
	ListActiveByMain(ctx context.Context, mainID int64) ([]model.SubCategory, error)
	Update(ctx context.Context, sub *model.SubCategory) error
	Delete(ctx context.Context, id int64) error
	DeleteByMain(ctx context.Context, mainID int64) error
}

type subCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository 创建二级分类仓库
func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) Create(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subCategoryRepository) GetByID(ctx context.Context, id int64) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := r.db.WithContext(ctx).First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

func (r *subCategoryRepository) ListByMain(ctx context.Context, mainID int64) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).Where("main_category_id = ?", mainID).Find(&subs).Error
	return subs, err
}

// ListActiveByMain 前台列表，二级分类与其一级分类都必须启用
func (r *subCategoryRepository) ListActiveByMain(ctx context.Context, mainID int64) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).
		Joins("JOIN main_categories ON main_categories.id = sub_categories.main_category_id").
		Where("sub_categories.main_category_id = ?", mainID).
		Where("sub_categories.is_active = ?", true).
		Where("main_categories.is_active = ?", true).
		Find(&subs).Error
	return subs, err
}

func (r *subCategoryRepository) Update(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *subCategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.SubCategory{}, id).Error
}

func (r *subCategoryRepository) DeleteByMain(ctx context.Context, mainID int64) error {
	return r.db.WithContext(ctx).
		Where("main_category_id = ?", mainID).
		Delete(&model.SubCategory{}).Error
}
