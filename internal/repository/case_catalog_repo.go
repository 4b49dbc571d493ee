package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"casemall_v1_202608/internal/model"
)

// ==================== CaseMainCategoryRepository 壳品牌仓库 ====================

// CaseMainCategoryRepository 壳品牌仓库接口
type CaseMainCategoryRepository interface {
	Create(ctx context.Context, cat *model.CaseMainCategory) error
	GetByID(ctx context.Context, id int64) (*model.CaseMainCategory, error)
	List(ctx context.Context) ([]model.CaseMainCategory, error)
	ListActive(ctx context.Context) ([]model.CaseMainCategory, error)
	Update(ctx context.Context, cat *model.CaseMainCategory) error
	Delete(ctx context.Context, id int64) error
}

type caseMainCategoryRepository struct {
	db *gorm.DB
}

// NewCaseMainCategoryRepository 创建壳品牌仓库
func NewCaseMainCategoryRepository(db *gorm.DB) CaseMainCategoryRepository {
	return &caseMainCategoryRepository{db: db}
}

func (r *caseMainCategoryRepository) Create(ctx context.Context, cat *model.CaseMainCategory) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *caseMainCategoryRepository) GetByID(ctx context.Context, id int64) (*model.CaseMainCategory, error) {
	var cat model.CaseMainCategory
	err := r.db.WithContext(ctx).First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cat, err
}

func (r *caseMainCategoryRepository) List(ctx context.Context) ([]model.CaseMainCategory, error) {
	var cats []model.CaseMainCategory
	err := r.db.WithContext(ctx).Order("id DESC").Find(&cats).Error
	return cats, err
}

func (r *caseMainCategoryRepository) ListActive(ctx context.Context) ([]model.CaseMainCategory, error) {
	var cats []model.CaseMainCategory
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&cats).Error
	return cats, err
}

func (r *caseMainCategoryRepository) Update(ctx context.Context, cat *model.CaseMainCategory) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *caseMainCategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CaseMainCategory{}, id).Error
}

// ==================== CasePhoneRepository 机型系列仓库 ====================

// CasePhoneRepository 机型系列仓库接口
type CasePhoneRepository interface {
	Create(ctx context.Context, p *model.CasePhone) error
	GetByID(ctx context.Context, id int64) (*model.CasePhone, error)
	ListByMain(ctx context.Context, mainID int64) ([]model.CasePhone, error)
	ListActiveByMain(ctx context.Context, mainID int64) ([]model.CasePhone, error)
	Update(ctx context.Context, p *model.CasePhone) error
	Delete(ctx context.Context, id int64) error
	DeleteByMain(ctx context.Context, mainID int64) error
}

type casePhoneRepository struct {
	db *gorm.DB
}

// NewCasePhoneRepository 创建机型系列仓库
func NewCasePhoneRepository(db *gorm.DB) CasePhoneRepository {
	return &casePhoneRepository{db: db}
}

func (r *casePhoneRepository) Create(ctx context.Context, p *model.CasePhone) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *casePhoneRepository) GetByID(ctx context.Context, id int64) (*model.CasePhone, error) {
	var p model.CasePhone
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *casePhoneRepository) ListByMain(ctx context.Context, mainID int64) ([]model.CasePhone, error) {
	var list []model.CasePhone
	err := r.db.WithContext(ctx).Where("case_main_category_id = ?", mainID).Find(&list).Error
	return list, err
}

func (r *casePhoneRepository) ListActiveByMain(ctx context.Context, mainID int64) ([]model.CasePhone, error) {
	var list []model.CasePhone
	err := r.db.WithContext(ctx).
		Where("case_main_category_id = ? AND is_active = ?", mainID, true).
		Find(&list).Error
	return list, err
}

func (r *casePhoneRepository) Update(ctx context.Context, p *model.CasePhone) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *casePhoneRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CasePhone{}, id).Error
}

func (r *casePhoneRepository) DeleteByMain(ctx context.Context, mainID int64) error {
	return r.db.WithContext(ctx).
		Where("case_main_category_id = ?", mainID).
		Delete(&model.CasePhone{}).Error
}

// ==================== CaseModelRepository 型号仓库 ====================

// CaseModelRepository 型号仓库接口
type CaseModelRepository interface {
	Create(ctx context.Context, m *model.CaseModel) error
	GetByID(ctx context.Context, id int64) (*model.CaseModel, error)
	ListByPhone(ctx context.Context, phoneID int64) ([]model.CaseModel, error)
	ListActiveByPhone(ctx context.Context, phoneID int64) ([]model.CaseModel, error)
	Update(ctx context.Context, m *model.CaseModel) error
	Delete(ctx context.Context, id int64) error
	DeleteByPhone(ctx context.Context, phoneID int64) error
	DeleteByPhones(ctx context.Context, phoneIDs []int64) error
}

type caseModelRepository struct {
	db *gorm.DB
}

// NewCaseModelRepository 创建型号仓库
func NewCaseModelRepository(db *gorm.DB) CaseModelRepository {
	return &caseModelRepository{db: db}
}

func (r *caseModelRepository) Create(ctx context.Context, m *model.CaseModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caseModelRepository) GetByID(ctx context.Context, id int64) (*model.CaseModel, error) {
	var m model.CaseModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *caseModelRepository) ListByPhone(ctx context.Context, phoneID int64) ([]model.CaseModel, error) {
	var list []model.CaseModel
	err := r.db.WithContext(ctx).Where("case_phone_id = ?", phoneID).Find(&list).Error
	return list, err
}

func (r *caseModelRepository) ListActiveByPhone(ctx context.Context, phoneID int64) ([]model.CaseModel, error) {
	var list []model.CaseModel
	err := r.db.WithContext(ctx).
		Where("case_phone_id = ? AND is_active = ?", phoneID, true).
		Find(&list).Error
	return list, err
}

func (r *caseModelRepository) Update(ctx context.Context, m *model.CaseModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *caseModelRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CaseModel{}, id).Error
}

func (r *caseModelRepository) DeleteByPhone(ctx context.Context, phoneID int64) error {
	return r.db.WithContext(ctx).
		Where("case_phone_id = ?", phoneID).
		Delete(&model.CaseModel{}).Error
}

func (r *caseModelRepository) DeleteByPhones(ctx context.Context, phoneIDs []int64) error {
	if len(phoneIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("case_phone_id IN ?", phoneIDs).
		Delete(&model.CaseModel{}).Error
}
