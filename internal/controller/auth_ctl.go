package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/service"
)

// AuthController 后台与前台认证
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// AdminLogin 管理员登录
// @Summary 管理员登录
// @Description 用户名+密码换取后台访问 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginReq true "登录参数"
// @Success 200 {object} dto.AdminLoginResp
// @Failure 401 {object} map[string]string "凭证错误"
// @Router /admin/auth/login [post]
func (h *AuthController) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register 用户注册
// @Summary 用户注册
// @Description 邮箱重复返回 400，密码只存哈希
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterReq true "注册参数"
// @Success 200 {object} map[string]string "{"message": "User registered successfully"}"
// @Failure 400 {object} map[string]string "邮箱已注册"
// @Router /auth/register [post]
func (h *AuthController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.Register(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// UserLogin 用户登录
// @Summary 用户登录
// @Description 登录名同时匹配邮箱和用户名
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.UserLoginReq true "登录参数"
// @Success 200 {object} dto.UserLoginResp
// @Failure 401 {object} map[string]string "凭证错误"
// @Router /auth/login [post]
func (h *AuthController) UserLogin(c *gin.Context) {
	var req dto.UserLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.UserLogin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
