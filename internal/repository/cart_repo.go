package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"casemall_v1_202608/internal/model"
)

// ==================== CartRepository 购物车仓库 ====================

// CartRepository 购物车仓库接口
type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	GetByUserAndProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Update(ctx context.Context, item *model.CartItem) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepository) GetByUserAndProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var list []model.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

func (r *cartRepository) Update(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteByUserAndProduct 删除不存在的行不算错误
func (r *cartRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}
