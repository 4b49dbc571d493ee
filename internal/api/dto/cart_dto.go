package dto

// CartAddReq 加购请求，数量缺省为 1
type CartAddReq struct {
	ProductID int64 `form:"product_id" json:"product_id" binding:"required"`
	Quantity  int   `form:"quantity" json:"quantity"`
}
