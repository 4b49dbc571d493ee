package dto

// ==================== 后台认证 ====================

// AdminLoginReq 管理员登录请求
type AdminLoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResp 管理员登录响应
type AdminLoginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ==================== 前台认证 ====================

// RegisterReq 用户注册请求
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserLoginReq 用户登录请求，email 字段同时匹配邮箱和用户名
type UserLoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo 登录响应里的用户信息
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserLoginResp 用户登录响应
type UserLoginResp struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
