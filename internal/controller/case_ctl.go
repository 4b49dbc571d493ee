package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/service"
)

// CaseController 壳目录的后台管理与前台读
type CaseController struct {
	caseService *service.CaseCatalogService
}

// NewCaseController 创建壳目录控制器
func NewCaseController(caseService *service.CaseCatalogService) *CaseController {
	return &CaseController{caseService: caseService}
}

// ==========================================
// 1. 品牌 (后台)
// ==========================================

// CreateMainCategory 新建品牌
func (h *CaseController) CreateMainCategory(c *gin.Context) {
	var form dto.CaseNameForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.caseService.CreateMainCategory(c.Request.Context(), form.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListMainCategories 后台品牌列表
func (h *CaseController) ListMainCategories(c *gin.Context) {
	cats, err := h.caseService.ListMainCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// UpdateMainCategory 品牌改名
func (h *CaseController) UpdateMainCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var form dto.CaseNameForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.UpdateMainCategory(c.Request.Context(), id, form.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// ToggleMainCategory 品牌显隐
func (h *CaseController) ToggleMainCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.ToggleMainCategory(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteMainCategory 删除品牌，级联机型与型号
func (h *CaseController) DeleteMainCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.caseService.DeleteMainCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ==========================================
// 2. 机型 (后台)
// ==========================================

// CreatePhone 新建机型
func (h *CaseController) CreatePhone(c *gin.Context) {
	var form dto.CasePhoneForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.caseService.CreatePhone(c.Request.Context(), form.Name, form.CaseMainCategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListPhones 后台机型列表
func (h *CaseController) ListPhones(c *gin.Context) {
	mainID, ok := parseIDParam(c, "main_id")
	if !ok {
		return
	}
	phones, err := h.caseService.ListPhones(c.Request.Context(), mainID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, phones)
}

// UpdatePhone 机型改名
func (h *CaseController) UpdatePhone(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var form dto.CaseNameForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.UpdatePhone(c.Request.Context(), id, form.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// TogglePhone 机型显隐
func (h *CaseController) TogglePhone(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.TogglePhone(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeletePhone 删除机型，级联型号
func (h *CaseController) DeletePhone(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.caseService.DeletePhone(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ==========================================
// 3. 型号 (后台)
// ==========================================

// CreateModel 新建型号
func (h *CaseController) CreateModel(c *gin.Context) {
	var form dto.CaseModelForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.caseService.CreateModel(c.Request.Context(), form.Name, form.CasePhoneID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListModels 后台型号列表
func (h *CaseController) ListModels(c *gin.Context) {
	phoneID, ok := parseIDParam(c, "phone_id")
	if !ok {
		return
	}
	models, err := h.caseService.ListModels(c.Request.Context(), phoneID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// UpdateModel 型号改名
func (h *CaseController) UpdateModel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var form dto.CaseNameForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.UpdateModel(c.Request.Context(), id, form.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// ToggleModel 型号显隐
func (h *CaseController) ToggleModel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.ToggleModel(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteModel 删除型号
func (h *CaseController) DeleteModel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.caseService.DeleteModel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ==========================================
// 4. 壳商品 (后台)
// ==========================================

// CreateProduct 新建壳商品
func (h *CaseController) CreateProduct(c *gin.Context) {
	var req dto.CaseProductReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.caseService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListProducts 后台壳商品列表
func (h *CaseController) ListProducts(c *gin.Context) {
	products, err := h.caseService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct 更新壳商品
func (h *CaseController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	var req dto.CaseProductReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.UpdateProduct(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// ToggleProduct 壳商品上下架
func (h *CaseController) ToggleProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.ToggleProduct(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteProduct 删除壳商品，级联位图（含文件）和映射
func (h *CaseController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	if err := h.caseService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ==========================================
// 5. 壳位图 (后台)
// ==========================================

// UploadVariant 上传壳位图，同位置替换
// @Summary 上传壳位图
// @Description type_name 限 type1..type5，同位置旧图（行+文件）整体替换
// @Tags AdminCases
// @Accept mpfd
// @Produce json
// @Param case_product_id path int true "壳商品 ID"
// @Param type_name formData string true "位置名"
// @Param image formData file true "图片"
// @Success 200 {object} map[string]interface{} "{"id": 1, "message": "Uploaded"}"
// @Router /admin/cases/case-product/{case_product_id}/variant [post]
func (h *CaseController) UploadVariant(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	var form dto.CaseVariantForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := readFormFile(c, "image", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.caseService.UploadVariant(c.Request.Context(), caseProductID, form.TypeName, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Uploaded"})
}

// ListVariants 后台位图列表，带 id 与显隐状态
func (h *CaseController) ListVariants(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	variants, err := h.caseService.ListVariants(c.Request.Context(), caseProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

// ToggleVariant 位图显隐
func (h *CaseController) ToggleVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.ToggleVariant(c.Request.Context(), variantID, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// DeleteVariant 按位置删除位图
func (h *CaseController) DeleteVariant(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	typeName := c.Param("type_name")

	if err := h.caseService.DeleteVariant(c.Request.Context(), caseProductID, typeName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ==========================================
// 6. 兼容映射 (后台)
// ==========================================

// MapModel 建立兼容映射，按 (壳商品, 型号) 幂等
// @Summary 壳商品映射到型号
// @Description 同一 (case_product, case_model) 已有映射时直接返回 Already mapped，不产生重复行
// @Tags AdminCases
// @Accept mpfd
// @Produce json
// @Param case_product_id path int true "壳商品 ID"
// @Param case_main_category_id formData int true "品牌 ID"
// @Param case_phone_id formData int true "机型 ID"
// @Param case_model_id formData int true "型号 ID"
// @Success 200 {object} map[string]interface{} "{"id": 1, "message": "Mapped"}"
// @Router /admin/cases/case-product/{case_product_id}/map-model [post]
func (h *CaseController) MapModel(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	var req dto.MapModelReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, alreadyMapped, err := h.caseService.MapModel(c.Request.Context(), caseProductID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	if alreadyMapped {
		c.JSON(http.StatusOK, gin.H{"message": "Already mapped"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Mapped"})
}

// ListMappedModels 后台映射列表
func (h *CaseController) ListMappedModels(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	rows, err := h.caseService.ListMappedModels(c.Request.Context(), caseProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ToggleMap 映射显隐
func (h *CaseController) ToggleMap(c *gin.Context) {
	mapID, ok := parseIDParam(c, "map_id")
	if !ok {
		return
	}
	var req dto.ToggleReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.caseService.ToggleMap(c.Request.Context(), mapID, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// ==========================================
// 7. 前台读
// ==========================================

// PublicMainCategories 前台品牌列表
func (h *CaseController) PublicMainCategories(c *gin.Context) {
	cats, err := h.caseService.ListActiveMainCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// PublicPhones 前台机型列表
func (h *CaseController) PublicPhones(c *gin.Context) {
	mainID, ok := parseIDParam(c, "main_id")
	if !ok {
		return
	}
	phones, err := h.caseService.ListActivePhones(c.Request.Context(), mainID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, phones)
}

// PublicModels 前台型号列表
func (h *CaseController) PublicModels(c *gin.Context) {
	phoneID, ok := parseIDParam(c, "phone_id")
	if !ok {
		return
	}
	models, err := h.caseService.ListActiveModels(c.Request.Context(), phoneID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// PublicProducts 前台壳商品列表
func (h *CaseController) PublicProducts(c *gin.Context) {
	products, err := h.caseService.ListActiveProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// PublicVariants 前台 type -> 图片 映射
func (h *CaseController) PublicVariants(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	variants, err := h.caseService.ListActiveVariants(c.Request.Context(), caseProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

// PublicAllowedModels 前台"可用型号"，三级联查过滤
// @Summary 壳商品可用型号
// @Description 品牌、机型、型号三级全部存在且启用的映射才下发；悬挂映射静默跳过
// @Tags Cases
// @Produce json
// @Param case_product_id path int true "壳商品 ID"
// @Success 200 {array} dto.AllowedModel
// @Router /cases/product/{case_product_id}/allowed-models [get]
func (h *CaseController) PublicAllowedModels(c *gin.Context) {
	caseProductID, ok := parseIDParam(c, "case_product_id")
	if !ok {
		return
	}
	rows, err := h.caseService.AllowedModels(c.Request.Context(), caseProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
