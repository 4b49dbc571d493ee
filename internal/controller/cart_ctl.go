package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/middleware"
	"casemall_v1_202608/internal/service"
)

// CartController 购物车接口，全部要求用户令牌
type CartController struct {
	cartService *service.CartService
}

// NewCartController 创建购物车控制器
func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// Add 加购，同商品数量累加
// @Summary 加入购物车
// @Description 同一用户重复加同一商品时数量叠加，不新增行
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body dto.CartAddReq true "商品与数量"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /cart/add [post]
func (h *CartController) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CartAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cartService.Add(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

// List 当前用户购物车
func (h *CartController) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	items, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Remove 移除条目，不存在时也返回成功
func (h *CartController) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}
