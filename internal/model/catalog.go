package model

// ==================== 普通商品目录 ====================

// MainCategory 一级分类
type MainCategory struct {
	BaseModel
	Name     string `gorm:"size:100" json:"name"`
	Image    string `gorm:"size:255" json:"image"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (MainCategory) TableName() string { return "main_categories" }

// SubCategory 二级分类，挂在一级分类下
type SubCategory struct {
	BaseModel
	Name           string `gorm:"size:100" json:"name"`
	Image          string `gorm:"size:255" json:"image"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	MainCategoryID int64  `gorm:"index" json:"main_category_id"`
}

func (SubCategory) TableName() string { return "sub_categories" }

// Product 商品
type Product struct {
	BaseModel
	Name            string `gorm:"size:100" json:"name"`
	Subtitle        string `gorm:"size:200" json:"subtitle"`
	Price           int    `json:"price"`
	DiscountPercent int    `gorm:"default:0" json:"discount_percent"`
	IsAvailable     bool   `gorm:"default:true" json:"is_available"`
	SubCategoryID   int64  `gorm:"index" json:"sub_category_id"`
}

func (Product) TableName() string { return "products" }

// ProductImage 商品位图，type1..type5 每个位置最多一张
type ProductImage struct {
	BaseModel
	TypeName  string `gorm:"size:10;uniqueIndex:uk_product_type" json:"type_name"`
	Image     string `gorm:"size:255" json:"image"`
	ProductID int64  `gorm:"uniqueIndex:uk_product_type" json:"product_id"`
}

func (ProductImage) TableName() string { return "product_images" }
