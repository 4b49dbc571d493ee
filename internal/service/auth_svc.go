package service

import (
	"context"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/middleware"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 管理员与用户两类主体的注册/登录，共用一套签发逻辑
type AuthService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(adminRepo repository.AdminRepository, userRepo repository.UserRepository) *AuthService {
	return &AuthService{adminRepo: adminRepo, userRepo: userRepo}
}

// ==================== 管理员 ====================

// AdminLogin 管理员登录，成功签发 subject 为用户名的 Token
func (s *AuthService) AdminLogin(ctx context.Context, req *dto.AdminLoginReq) (*dto.AdminLoginResp, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(middleware.PrincipalAdmin, admin.Username)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResp{AccessToken: token, TokenType: "bearer"}, nil
}

// CreateAdmin 创建管理员账号，命令行工具使用
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) error {
	existing, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAdminExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.adminRepo.Create(ctx, &model.Admin{
		Username: username,
		Password: string(hashed),
	})
}

// ==================== 用户 ====================

// Register 用户注册，邮箱重复返回冲突，密码只存盐化哈希
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterReq) error {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Create(ctx, &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	})
}

// UserLogin 用户登录，登录名同时匹配邮箱和用户名，
// 成功签发 subject 为用户数字 ID 的 Token
func (s *AuthService) UserLogin(ctx context.Context, req *dto.UserLoginReq) (*dto.UserLoginResp, error) {
	user, err := s.userRepo.GetByLogin(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(middleware.PrincipalUser, strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, err
	}
	return &dto.UserLoginResp{
		Token: token,
		User: dto.UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
