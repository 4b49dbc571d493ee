package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"casemall_v1_202608/internal/controller"
	"casemall_v1_202608/internal/middleware"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
	"casemall_v1_202608/internal/router"
	"casemall_v1_202608/internal/service"
	"casemall_v1_202608/internal/task"
	"casemall_v1_202608/pkg/config"
	"casemall_v1_202608/pkg/database"
	"casemall_v1_202608/pkg/logger"
)

func main() {
	// 1. 加载配置（JWT_SECRET 缺失直接拒绝启动）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(cfg.GinMode); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Issuer:    cfg.JWTIssuer,
	})

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	initTasks(cfg, db)

	// 5. 初始化路由
	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	router.InitRoutes(r, cfg,
		deps.Controllers.Auth,
		deps.Controllers.Catalog,
		deps.Controllers.Case,
		deps.Controllers.Cart,
	)

	// 6. 启动服务
	startServer(r, cfg.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	CatalogUow *repository.CatalogUnitOfWork
	CaseUow    *repository.CaseUnitOfWork
	Admin      repository.AdminRepository
	User       repository.UserRepository
	Cart       repository.CartRepository
}

// Services 服务集合
type Services struct {
	Storage service.StorageProvider
	Catalog *service.CatalogService
	Case    *service.CaseCatalogService
	Auth    *service.AuthService
	Cart    *service.CartService
}

// Controllers 控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Catalog *controller.CatalogController
	Case    *controller.CaseController
	Cart    *controller.CartController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.InitDB(cfg.DSN(),
		// Catalog
		&model.MainCategory{}, &model.SubCategory{},
		&model.Product{}, &model.ProductImage{},
		// Case
		&model.CaseMainCategory{}, &model.CasePhone{}, &model.CaseModel{},
		&model.CaseProduct{}, &model.CaseVariant{}, &model.CaseProductModelMap{},
		// Account
		&model.Admin{}, &model.User{},
		// Cart
		&model.CartItem{},
	)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		CatalogUow: repository.NewCatalogUnitOfWork(db),
		CaseUow:    repository.NewCaseUnitOfWork(db),
		Admin:      repository.NewAdminRepository(db),
		User:       repository.NewUserRepository(db),
		Cart:       repository.NewCartRepository(db),
	}

	// -------- 存储 --------
	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		log.Fatalf("初始化存储失败: %v", err)
	}

	// -------- 业务服务 --------
	services := &Services{
		Storage: storage,
		Catalog: service.NewCatalogService(repos.CatalogUow, storage),
		Case:    service.NewCaseCatalogService(repos.CaseUow, storage),
		Auth:    service.NewAuthService(repos.Admin, repos.User),
		Cart:    service.NewCartService(repos.Cart),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:    controller.NewAuthController(services.Auth),
		Catalog: controller.NewCatalogController(services.Catalog),
		Case:    controller.NewCaseController(services.Case),
		Cart:    controller.NewCartController(services.Cart),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 启动定时任务，s3 模式没有本地目录可扫
func initTasks(cfg *config.Config, db *gorm.DB) {
	if cfg.StorageProvider != "local" && cfg.StorageProvider != "" {
		return
	}

	cleanupTask := task.NewCleanupTask(db, cfg.UploadDir, cfg.CleanupSpec, cfg.CleanupMinAge)
	if err := cleanupTask.Start(); err != nil {
		log.Fatalf("启动清理任务失败: %v", err)
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.L.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("正在关闭服务...")

	// 优雅关闭，最多等待 10 秒
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	logger.L.Info("服务已退出")
}
