package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"casemall_v1_202608/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListBySub(ctx context.Context, subID int64) ([]model.Product, error)
	ListVisible(ctx context.Context) ([]model.Product, error)
	ListVisibleBySub(ctx context.Context, subID int64) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
	DeleteBySub(ctx context.Context, subID int64) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepository) ListBySub(ctx context.Context, subID int64) ([]model.Product, error) {
	var list []model.Product
	err := r.db.WithContext(ctx).Where("sub_category_id = ?", subID).Find(&list).Error
	return list, err
}

// visibleQuery 前台可见性：商品上架且二级、一级分类均启用
func (r *productRepository) visibleQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Joins("JOIN sub_categories ON sub_categories.id = products.sub_category_id").
		Joins("JOIN main_categories ON main_categories.id = sub_categories.main_category_id").
		Where("products.is_available = ?", true).
		Where("sub_categories.is_active = ?", true).
		Where("main_categories.is_active = ?", true)
}

func (r *productRepository) ListVisible(ctx context.Context) ([]model.Product, error) {
	var list []model.Product
	err := r.visibleQuery(ctx).Find(&list).Error
	return list, err
}

func (r *productRepository) ListVisibleBySub(ctx context.Context, subID int64) ([]model.Product, error) {
	var list []model.Product
	err := r.visibleQuery(ctx).Where("products.sub_category_id = ?", subID).Find(&list).Error
	return list, err
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepository) DeleteBySub(ctx context.Context, subID int64) error {
	return r.db.WithContext(ctx).
		Where("sub_category_id = ?", subID).
		Delete(&model.Product{}).Error
}

// ==================== ProductImageRepository 商品位图仓库 ====================

// ProductImageRepository 商品位图仓库接口
type ProductImageRepository interface {
	Create(ctx context.Context, img *model.ProductImage) error
	GetByProductAndType(ctx context.Context, productID int64, typeName string) (*model.ProductImage, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.ProductImage, error)
	DeleteByProductAndType(ctx context.Context, productID int64, typeName string) error
	DeleteByProduct(ctx context.Context, productID int64) error
}

type productImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository 创建商品位图仓库
func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	return &productImageRepository{db: db}
}

func (r *productImageRepository) Create(ctx context.Context, img *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *productImageRepository) GetByProductAndType(ctx context.Context, productID int64, typeName string) (*model.ProductImage, error) {
	var img model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND type_name = ?", productID, typeName).
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &img, err
}

func (r *productImageRepository) ListByProduct(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	var list []model.ProductImage
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&list).Error
	return list, err
}

func (r *productImageRepository) DeleteByProductAndType(ctx context.Context, productID int64, typeName string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND type_name = ?", productID, typeName).
		Delete(&model.ProductImage{}).Error
}

func (r *productImageRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductImage{}).Error
}
