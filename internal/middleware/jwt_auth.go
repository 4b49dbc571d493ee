package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置，密钥由启动时注入，严禁常量
type JWTConfig struct {
	SecretKey string
	TokenTTL  time.Duration
	Issuer    string
}

var jwtConfig = &JWTConfig{
	TokenTTL: 24 * time.Hour,
	Issuer:   "casemall",
}

// SetJWTConfig 注入 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// ==================== Claims 定义 ====================

// 主体类型：后台管理员 / 前台用户，同一套签发与校验逻辑
const (
	PrincipalAdmin = "admin"
	PrincipalUser  = "user"
)

// AuthClaims 统一声明，Kind 区分主体类型，Subject 为管理员用户名或用户数字 ID
type AuthClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// ==================== Token 签发与校验 ====================

// GenerateToken 签发指定主体类型的 Token
func GenerateToken(kind, subject string) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ParseToken 解析并校验 Token，签名错误、格式错误和过期一律视为无效，不做细分
func ParseToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID        = "user_id"
	ContextKeyAdminUsername = "admin_username"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// bearerClaims 提取并校验 Bearer Token，校验主体类型
func bearerClaims(c *gin.Context, kind string) *AuthClaims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "未提供认证信息")
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "认证格式错误，应为 Bearer {token}")
		return nil
	}

	claims, err := ParseToken(parts[1])
	if err != nil {
		abortUnauthorized(c, "Token 无效或已过期")
		return nil
	}
	if claims.Kind != kind {
		abortUnauthorized(c, "Token 类型错误")
		return nil
	}
	return claims
}

// AdminAuth 后台管理员认证中间件
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := bearerClaims(c, PrincipalAdmin)
		if claims == nil {
			return
		}
		c.Set(ContextKeyAdminUsername, claims.Subject)
		c.Next()
	}
}

// UserAuth 前台用户认证中间件，Subject 必须能解析成用户 ID
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := bearerClaims(c, PrincipalUser)
		if claims == nil {
			return
		}
		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			abortUnauthorized(c, "Token 无效或已过期")
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetAdminUsername 从 Context 获取管理员用户名
func GetAdminUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyAdminUsername); exists {
		return name.(string)
	}
	return ""
}
