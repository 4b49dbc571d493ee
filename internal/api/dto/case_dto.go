package dto

// ==================== 后台壳目录请求 ====================

// CaseNameForm 品牌/机型/型号的改名与创建共用表单
type CaseNameForm struct {
	Name string `form:"name" json:"name" binding:"required"`
}

// CasePhoneForm 机型创建表单
type CasePhoneForm struct {
	Name               string `form:"name" json:"name" binding:"required"`
	CaseMainCategoryID int64  `form:"case_main_category_id" json:"case_main_category_id" binding:"required"`
}

// CaseModelForm 型号创建表单
type CaseModelForm struct {
	Name        string `form:"name" json:"name" binding:"required"`
	CasePhoneID int64  `form:"case_phone_id" json:"case_phone_id" binding:"required"`
}

// CaseProductReq 壳商品创建/更新参数
type CaseProductReq struct {
	Title           string `form:"title" json:"title" binding:"required"`
	Subtitle        string `form:"subtitle" json:"subtitle"`
	Price           int    `form:"price" json:"price" binding:"required"`
	DiscountPercent int    `form:"discount_percent" json:"discount_percent"`
}

// CaseVariantForm 壳位图上传表单
type CaseVariantForm struct {
	TypeName string `form:"type_name" binding:"required,oneof=type1 type2 type3 type4 type5"`
}

// MapModelReq 建立兼容映射，main/phone 为型号祖先链的冗余拷贝
type MapModelReq struct {
	CaseMainCategoryID int64 `form:"case_main_category_id" json:"case_main_category_id" binding:"required"`
	CasePhoneID        int64 `form:"case_phone_id" json:"case_phone_id" binding:"required"`
	CaseModelID        int64 `form:"case_model_id" json:"case_model_id" binding:"required"`
}

// ==================== 前台壳目录响应 ====================

// AllowedModel 可用型号行，品牌/机型/型号三级都存在且启用才下发
type AllowedModel struct {
	MapID              int64  `json:"map_id"`
	CaseMainCategoryID int64  `json:"case_main_category_id"`
	CasePhoneID        int64  `json:"case_phone_id"`
	CaseModelID        int64  `json:"case_model_id"`
	MainName           string `json:"main_name"`
	PhoneName          string `json:"phone_name"`
	ModelName          string `json:"model_name"`
}
