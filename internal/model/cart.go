package model

// CartItem 购物车行，同一 (user, product) 只有一行，数量累加
type CartItem struct {
	BaseModel
	UserID    int64 `gorm:"not null;uniqueIndex:uk_user_product" json:"user_id"`
	ProductID int64 `gorm:"not null;uniqueIndex:uk_user_product" json:"product_id"`
	Quantity  int   `gorm:"default:1" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }
