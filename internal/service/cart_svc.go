package service

import (
	"context"

	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
)

// ==================== CartService 购物车服务 ====================

// CartService 每用户的行级数量累加
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// Add 加购：已有同商品行则数量累加，没有则插入新行
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	item, err := s.cartRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if item != nil {
		item.Quantity += quantity
		return s.cartRepo.Update(ctx, item)
	}

	return s.cartRepo.Create(ctx, &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// List 返回当前用户的全部购物车行
func (s *CartService) List(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// Remove 删除购物车行，行不存在是幂等的
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	return s.cartRepo.DeleteByUserAndProduct(ctx, userID, productID)
}
