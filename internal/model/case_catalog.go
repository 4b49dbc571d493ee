package model

// ==================== 手机壳目录 ====================

// CaseMainCategory 壳类一级分类（品牌）
type CaseMainCategory struct {
	BaseModel
	Name     string `gorm:"size:100;not null;unique" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (CaseMainCategory) TableName() string { return "case_main_categories" }

// CasePhone 机型系列，挂在品牌下
type CasePhone struct {
	BaseModel
	Name               string `gorm:"size:120;not null" json:"name"`
	IsActive           bool   `gorm:"default:true" json:"is_active"`
	CaseMainCategoryID int64  `gorm:"index;not null" json:"case_main_category_id"`
}

func (CasePhone) TableName() string { return "case_phones" }

// CaseModel 具体型号，挂在机型系列下
type CaseModel struct {
	BaseModel
	Name        string `gorm:"size:120;not null" json:"name"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	CasePhoneID int64  `gorm:"index;not null" json:"case_phone_id"`
}

func (CaseModel) TableName() string { return "case_models" }

// CaseProduct 壳商品，通过映射表兼容多个型号
type CaseProduct struct {
	BaseModel
	Title           string `gorm:"size:120;not null" json:"title"`
	Subtitle        string `gorm:"type:text" json:"subtitle"`
	Price           int    `gorm:"not null" json:"price"`
	DiscountPercent int    `gorm:"default:0" json:"discount_percent"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
}

func (CaseProduct) TableName() string { return "case_products" }

// CaseVariant 壳商品位图，同一商品同一 type_name 最多一张
type CaseVariant struct {
	BaseModel
	CaseProductID int64  `gorm:"not null;uniqueIndex:uk_case_product_type" json:"case_product_id"`
	TypeName      string `gorm:"size:30;not null;uniqueIndex:uk_case_product_type" json:"type_name"`
	Image         string `gorm:"size:255;not null" json:"image"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

func (CaseVariant) TableName() string { return "case_variants" }

// CaseProductModelMap 壳商品 -> (品牌, 机型, 型号) 兼容映射
// main/phone 两列是型号祖先链的冗余拷贝，读路径无需再联表
type CaseProductModelMap struct {
	BaseModel
	CaseProductID      int64 `gorm:"not null;uniqueIndex:uk_case_product_model" json:"case_product_id"`
	CaseMainCategoryID int64 `gorm:"not null" json:"case_main_category_id"`
	CasePhoneID        int64 `gorm:"not null" json:"case_phone_id"`
	CaseModelID        int64 `gorm:"not null;uniqueIndex:uk_case_product_model" json:"case_model_id"`
	IsActive           bool  `gorm:"default:true" json:"is_active"`
}

func (CaseProductModelMap) TableName() string { return "case_product_model_maps" }
