package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/middleware"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
)

func setupAuthTest(t *testing.T) *AuthService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Admin{}, &model.User{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: "test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "casemall-test",
	})

	return NewAuthService(
		repository.NewAdminRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestAuthService_AdminLogin(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	if err := svc.CreateAdmin(ctx, "boss", "secret123"); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	resp, err := svc.AdminLogin(ctx, &dto.AdminLoginReq{Username: "boss", Password: "secret123"})
	if err != nil {
		t.Fatalf("AdminLogin() error = %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type 应为 bearer, 实际 %s", resp.TokenType)
	}

	claims, err := middleware.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 应可解析: %v", err)
	}
	if claims.Kind != middleware.PrincipalAdmin || claims.Subject != "boss" {
		t.Errorf("Token 声明不对: kind=%s subject=%s", claims.Kind, claims.Subject)
	}
}

func TestAuthService_AdminLogin_WrongPassword(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	if err := svc.CreateAdmin(ctx, "boss", "secret123"); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	_, err := svc.AdminLogin(ctx, &dto.AdminLoginReq{Username: "boss", Password: "wrong"})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials, 实际 %v", err)
	}

	// 不存在的管理员同样返回凭证错误，不暴露账号是否存在
	_, err = svc.AdminLogin(ctx, &dto.AdminLoginReq{Username: "ghost", Password: "x"})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials, 实际 %v", err)
	}
}

func TestAuthService_CreateAdmin_Exists(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	if err := svc.CreateAdmin(ctx, "boss", "a"); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if err := svc.CreateAdmin(ctx, "boss", "b"); err != ErrAdminExists {
		t.Errorf("期望 ErrAdminExists, 实际 %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	req := &dto.RegisterReq{Name: "张三", Email: "zhang@example.com", Password: "pw123456"}
	if err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err := svc.Register(ctx, &dto.RegisterReq{Name: "李四", Email: "zhang@example.com", Password: "other"})
	if err != ErrEmailTaken {
		t.Errorf("期望 ErrEmailTaken, 实际 %v", err)
	}
}

func TestAuthService_UserLogin_ByEmailOrName(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	req := &dto.RegisterReq{Name: "zhangsan", Email: "zhang@example.com", Password: "pw123456"}
	if err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 同一账号，邮箱和用户名都能登录，且指向同一个用户 ID
	byEmail, err := svc.UserLogin(ctx, &dto.UserLoginReq{Email: "zhang@example.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("邮箱登录失败: %v", err)
	}
	byName, err := svc.UserLogin(ctx, &dto.UserLoginReq{Email: "zhangsan", Password: "pw123456"})
	if err != nil {
		t.Fatalf("用户名登录失败: %v", err)
	}
	if byEmail.User.ID != byName.User.ID {
		t.Errorf("两种登录应指向同一用户: %d != %d", byEmail.User.ID, byName.User.ID)
	}

	claims, err := middleware.ParseToken(byName.Token)
	if err != nil {
		t.Fatalf("签发的 Token 应可解析: %v", err)
	}
	if claims.Kind != middleware.PrincipalUser {
		t.Errorf("Token 主体类型应为 user, 实际 %s", claims.Kind)
	}
	if claims.Subject != strconv.FormatInt(byName.User.ID, 10) {
		t.Errorf("Token subject 应为用户 ID: %s", claims.Subject)
	}
}

func TestAuthService_UserLogin_PasswordNotLeaked(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	if err := svc.Register(ctx, &dto.RegisterReq{Name: "a", Email: "a@b.c", Password: "pw123456"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.UserLogin(ctx, &dto.UserLoginReq{Email: "a@b.c", Password: "bad"})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials, 实际 %v", err)
	}
}
