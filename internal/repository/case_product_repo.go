package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"casemall_v1_202608/internal/model"
)

// ==================== CaseProductRepository 壳商品仓库 ====================

// CaseProductRepository 壳商品仓库接口
type CaseProductRepository interface {
	Create(ctx context.Context, p *model.CaseProduct) error
	GetByID(ctx context.Context, id int64) (*model.CaseProduct, error)
	List(ctx context.Context) ([]model.CaseProduct, error)
	ListActive(ctx context.Context) ([]model.CaseProduct, error)
	Update(ctx context.Context, p *model.CaseProduct) error
	Delete(ctx context.Context, id int64) error
}

type caseProductRepository struct {
	db *gorm.DB
}

// NewCaseProductRepository 创建壳商品仓库
func NewCaseProductRepository(db *gorm.DB) CaseProductRepository {
	return &caseProductRepository{db: db}
}

func (r *caseProductRepository) Create(ctx context.Context, p *model.CaseProduct) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *caseProductRepository) GetByID(ctx context.Context, id int64) (*model.CaseProduct, error) {
	var p model.CaseProduct
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *caseProductRepository) List(ctx context.Context) ([]model.CaseProduct, error) {
	var list []model.CaseProduct
	err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *caseProductRepository) ListActive(ctx context.Context) ([]model.CaseProduct, error) {
	var list []model.CaseProduct
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id DESC").
		Find(&list).Error
	return list, err
}

func (r *caseProductRepository) Update(ctx context.Context, p *model.CaseProduct) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *caseProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CaseProduct{}, id).Error
}

// ==================== CaseVariantRepository 壳位图仓库 ====================

// CaseVariantRepository 壳位图仓库接口
type CaseVariantRepository interface {
	Create(ctx context.Context, v *model.CaseVariant) error
	GetByID(ctx context.Context, id int64) (*model.CaseVariant, error)
	GetByProductAndType(ctx context.Context, caseProductID int64, typeName string) (*model.CaseVariant, error)
	ListByProduct(ctx context.Context, caseProductID int64) ([]model.CaseVariant, error)
	ListActiveByProduct(ctx context.Context, caseProductID int64) ([]model.CaseVariant, error)
	Update(ctx context.Context, v *model.CaseVariant) error
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, caseProductID int64) error
}

type caseVariantRepository struct {
	db *gorm.DB
}

// NewCaseVariantRepository 创建壳位图仓库
func NewCaseVariantRepository(db *gorm.DB) CaseVariantRepository {
	return &caseVariantRepository{db: db}
}

func (r *caseVariantRepository) Create(ctx context.Context, v *model.CaseVariant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *caseVariantRepository) GetByID(ctx context.Context, id int64) (*model.CaseVariant, error) {
	var v model.CaseVariant
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *caseVariantRepository) GetByProductAndType(ctx context.Context, caseProductID int64, typeName string) (*model.CaseVariant, error) {
	var v model.CaseVariant
	err := r.db.WithContext(ctx).
		Where("case_product_id = ? AND type_name = ?", caseProductID, typeName).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *caseVariantRepository) ListByProduct(ctx context.Context, caseProductID int64) ([]model.CaseVariant, error) {
	var list []model.CaseVariant
	err := r.db.WithContext(ctx).Where("case_product_id = ?", caseProductID).Find(&list).Error
	return list, err
}

func (r *caseVariantRepository) ListActiveByProduct(ctx context.Context, caseProductID int64) ([]model.CaseVariant, error) {
	var list []model.CaseVariant
	err := r.db.WithContext(ctx).
		Where("case_product_id = ? AND is_active = ?", caseProductID, true).
		Find(&list).Error
	return list, err
}

func (r *caseVariantRepository) Update(ctx context.Context, v *model.CaseVariant) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *caseVariantRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CaseVariant{}, id).Error
}

func (r *caseVariantRepository) DeleteByProduct(ctx context.Context, caseProductID int64) error {
	return r.db.WithContext(ctx).
		Where("case_product_id = ?", caseProductID).
		Delete(&model.CaseVariant{}).Error
}

// ==================== CaseMapRepository 兼容映射仓库 ====================

// CaseMapRepository 壳商品型号映射仓库接口
type CaseMapRepository interface {
	Create(ctx context.Context, m *model.CaseProductModelMap) error
	GetByID(ctx context.Context, id int64) (*model.CaseProductModelMap, error)
	GetByProductAndModel(ctx context.Context, caseProductID, caseModelID int64) (*model.CaseProductModelMap, error)
	ListByProduct(ctx context.Context, caseProductID int64) ([]model.CaseProductModelMap, error)
	ListActiveByProduct(ctx context.Context, caseProductID int64) ([]model.CaseProductModelMap, error)
	Update(ctx context.Context, m *model.CaseProductModelMap) error
	DeleteByProduct(ctx context.Context, caseProductID int64) error
}

type caseMapRepository struct {
	db *gorm.DB
}

// NewCaseMapRepository 创建映射仓库
func NewCaseMapRepository(db *gorm.DB) CaseMapRepository {
	return &caseMapRepository{db: db}
}

func (r *caseMapRepository) Create(ctx context.Context, m *model.CaseProductModelMap) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caseMapRepository) GetByID(ctx context.Context, id int64) (*model.CaseProductModelMap, error) {
	var m model.CaseProductModelMap
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *caseMapRepository) GetByProductAndModel(ctx context.Context, caseProductID, caseModelID int64) (*model.CaseProductModelMap, error) {
	var m model.CaseProductModelMap
	err := r.db.WithContext(ctx).
		Where("case_product_id = ? AND case_model_id = ?", caseProductID, caseModelID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *caseMapRepository) ListByProduct(ctx context.Context, caseProductID int64) ([]model.CaseProductModelMap, error) {
	var list []model.CaseProductModelMap
	err := r.db.WithContext(ctx).Where("case_product_id = ?", caseProductID).Find(&list).Error
	return list, err
}

func (r *caseMapRepository) ListActiveByProduct(ctx context.Context, caseProductID int64) ([]model.CaseProductModelMap, error) {
	var list []model.CaseProductModelMap
	err := r.db.WithContext(ctx).
		Where("case_product_id = ? AND is_active = ?", caseProductID, true).
		Find(&list).Error
	return list, err
}

func (r *caseMapRepository) Update(ctx context.Context, m *model.CaseProductModelMap) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *caseMapRepository) DeleteByProduct(ctx context.Context, caseProductID int64) error {
	return r.db.WithContext(ctx).
		Where("case_product_id = ?", caseProductID).
		Delete(&model.CaseProductModelMap{}).Error
}
