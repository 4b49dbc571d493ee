package dto

// ==================== 后台目录请求 ====================

// ToggleReq 显隐开关，布尔值在边界解析一次
// 表单里传 "true"/"false" 字符串（大小写不敏感）同样能绑定
type ToggleReq struct {
	IsActive *bool `form:"is_active" json:"is_active" binding:"required"`
}

// MainCategoryForm 一级分类表单，图片走 multipart 文件字段
type MainCategoryForm struct {
	Name string `form:"name" binding:"required"`
}

// SubCategoryForm 二级分类表单
type SubCategoryForm struct {
	Name           string `form:"name" binding:"required"`
	MainCategoryID int64  `form:"main_category_id" binding:"required"`
}

// ProductReq 商品创建/更新参数
type ProductReq struct {
	Name            string `form:"name" json:"name" binding:"required"`
	Subtitle        string `form:"subtitle" json:"subtitle"`
	Price           int    `form:"price" json:"price" binding:"required"`
	DiscountPercent int    `form:"discount_percent" json:"discount_percent"`
	SubCategoryID   int64  `form:"sub_category_id" json:"sub_category_id" binding:"required"`
}

// TypeImageForm 位图上传表单，位置限定 type1..type5
type TypeImageForm struct {
	TypeName string `form:"type_name" binding:"required,oneof=type1 type2 type3 type4 type5"`
}

// ==================== 前台目录响应 ====================

// ProductCard 前台商品卡片，Image 为 type1 主图，可为空
type ProductCard struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Subtitle        string  `json:"subtitle"`
	Price           int     `json:"price"`
	DiscountPercent int     `json:"discount_percent"`
	SubCategoryID   int64   `json:"sub_category_id"`
	Image           *string `json:"image"`
}
