package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/service"
)

// CatalogController 普通目录的后台管理与前台读
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController 创建目录控制器
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ==========================================
// 1. 一级分类 (后台)
// ==========================================

// CreateMainCategory 新建一级分类
// @Summary 新建一级分类
// @Description multipart 表单，name 和 image 均必填
// @Tags AdminCatalog
// @Accept mpfd
// @Produce json
// @Param name formData string true "分类名"
// @Param image formData file true "分类图"
// @Success 200 {object} map[string]int64 "{"id": 1}"
// @Router /admin/catalog/main-category [post]
func (h *CatalogController) CreateMainCategory(c *gin.Context) {
	var form dto.MainCategoryForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := readFormFile(c, "image", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.catalogService.CreateMainCategory(c.Request.Context(), form.Name, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListMainCategories 后台一级分类列表
// @Summary 后台一级分类列表
// @Tags AdminCatalog
// @Produce json
// @Success 200 {array} model.MainCategory
// @Router /admin/catalog/main-categories [get]
func (h *CatalogController) ListMainCategories(c *gin.Context) {
	cats, err := h.catalogService.ListMainCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// UpdateMainCategory 更新一级分类，图片可选
func (h *CatalogController) UpdateMainCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var form dto.MainCategoryForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := readFormFile(c, "image", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdateMainCategory(c.Request.Context(), id, form.Name, image); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Main category updated"})
}

// ToggleMainCategory 一级分类显隐
func (h *CatalogController) ToggleMainCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.ToggleMainCategory(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteMainCategory 删除一级分类并整棵级联
// @Summary 删除一级分类
// @Description 级联删除二级分类、商品、位图行及全部落盘文件
// @Tags AdminCatalog
// @Produce json
// @Param id path int true "分类 ID"
// @Success 200 {object} map[string]string "{"message": "Main category deleted"}"
// @Failure 404 {object} map[string]string "分类不存在"
// @Router /admin/catalog/main-category/{id} [delete]
func (h *CatalogController) DeleteMainCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteMainCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Main category deleted"})
}

// ==========================================
// 2. 二级分类 (后台)
// ==========================================

// CreateSubCategory 新建二级分类
func (h *CatalogController) CreateSubCategory(c *gin.Context) {
	var form dto.SubCategoryForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := readFormFile(c, "image", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.catalogService.CreateSubCategory(c.Request.Context(), form.Name, form.MainCategoryID, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListSubCategories 后台二级分类列表
func (h *CatalogController) ListSubCategories(c *gin.Context) {
	mainID, ok := parseIDParam(c, "main_id")
	if !ok {
		return
	}
	subs, err := h.catalogService.ListSubCategories(c.Request.Context(), mainID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// UpdateSubCategory 更新二级分类，图片可选
func (h *CatalogController) UpdateSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var form dto.SubCategoryForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := readFormFile(c, "image", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdateSubCategory(c.Request.Context(), id, form.Name, form.MainCategoryID, image); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub category updated"})
}

// ToggleSubCategory 二级分类显隐
func (h *CatalogController) ToggleSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.ToggleSubCategory(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteSubCategory 删除二级分类并一层级联
func (h *CatalogController) DeleteSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSubCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub category deleted"})
}

// ==========================================
// 3. 商品 (后台)
// ==========================================

// CreateProduct 新建商品
func (h *CatalogController) CreateProduct(c *gin.Context) {
	var req dto.ProductReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListProducts 后台商品列表
func (h *CatalogController) ListProducts(c *gin.Context) {
	subID, ok := parseIDParam(c, "sub_id")
	if !ok {
		return
	}
	products, err := h.catalogService.ListProducts(c.Request.Context(), subID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct 更新商品
func (h *CatalogController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// ToggleProduct 商品上下架，参数名沿用 is_active
func (h *CatalogController) ToggleProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.ToggleProduct(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteProduct 删除商品及位图
func (h *CatalogController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ==========================================
// 4. 商品位图 (后台)
// ==========================================

// UploadTypeImage 上传位图，同位置替换
// @Summary 上传商品位图
// @Description type_name 限 type1..type5，同位置旧图整体替换
// @Tags AdminCatalog
// @Accept mpfd
// @Produce json
// @Param product_id path int true "商品 ID"
// @Param type_name formData string true "位置名"
// @Param image formData file true "图片"
// @Success 200 {object} map[string]string "{"message": "type1 uploaded"}"
// @Router /admin/catalog/product/{product_id}/type-image [post]
func (h *CatalogController) UploadTypeImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	var form dto.TypeImageForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := readFormFile(c, "image", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UploadTypeImage(c.Request.Context(), productID, form.TypeName, image); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": form.TypeName + " uploaded"})
}

// ListTypeImages 商品位图映射
func (h *CatalogController) ListTypeImages(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	images, err := h.catalogService.ListTypeImages(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// DeleteTypeImage 删除位置图片
func (h *CatalogController) DeleteTypeImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	typeName := c.Param("type_name")

	if err := h.catalogService.DeleteTypeImage(c.Request.Context(), productID, typeName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image removed"})
}

// ==========================================
// 5. 前台读
// ==========================================

// UserMainCategories 前台一级分类
func (h *CatalogController) UserMainCategories(c *gin.Context) {
	cats, err := h.catalogService.ListActiveMainCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// UserSubCategories 前台二级分类，祖先链必须启用
func (h *CatalogController) UserSubCategories(c *gin.Context) {
	mainID, ok := parseIDParam(c, "main_id")
	if !ok {
		return
	}
	subs, err := h.catalogService.ListActiveSubCategories(c.Request.Context(), mainID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// UserProducts 前台全部商品卡片
// @Summary 前台商品列表
// @Description 只含上架且祖先链启用的商品，带 type1 主图
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.ProductCard
// @Router /catalog/products [get]
func (h *CatalogController) UserProducts(c *gin.Context) {
	cards, err := h.catalogService.ListVisibleProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// UserProductsBySub 前台按二级分类过滤的商品卡片
func (h *CatalogController) UserProductsBySub(c *gin.Context) {
	subID, ok := parseIDParam(c, "sub_id")
	if !ok {
		return
	}
	cards, err := h.catalogService.ListVisibleProductsBySub(c.Request.Context(), subID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
