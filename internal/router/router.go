package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"casemall_v1_202608/internal/controller"
	"casemall_v1_202608/internal/middleware"
	"casemall_v1_202608/pkg/config"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	cfg *config.Config,
	authCtl *controller.AuthController,
	catalogCtl *controller.CatalogController,
	caseCtl *controller.CaseController,
	cartCtl *controller.CartController) {

	// CORS，前端本地开发默认放行 vite 端口
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// 本地存储模式下直接挂静态目录
	if cfg.StorageProvider == "local" {
		r.Static(cfg.StaticPrefix, cfg.UploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 1. 管理端登录（不过鉴权中间件）
	r.POST("/admin/auth/login", authCtl.AdminLogin)

	// 2. 管理端业务路由，全部要求管理员令牌
	adminCatalog := r.Group("/admin/catalog", middleware.AdminAuth())
	{
		// 主分类
		adminCatalog.POST("/main-category", catalogCtl.CreateMainCategory)
		adminCatalog.GET("/main-categories", catalogCtl.ListMainCategories)
		adminCatalog.PUT("/main-category/:id", catalogCtl.UpdateMainCategory)
		adminCatalog.PATCH("/main-category/:id/toggle", catalogCtl.ToggleMainCategory)
		adminCatalog.DELETE("/main-category/:id", catalogCtl.DeleteMainCategory)

		// 子分类
		adminCatalog.POST("/sub-category", catalogCtl.CreateSubCategory)
		adminCatalog.GET("/sub-categories/by-main/:main_id", catalogCtl.ListSubCategories)
		adminCatalog.PUT("/sub-category/:id", catalogCtl.UpdateSubCategory)
		adminCatalog.PATCH("/sub-category/:id/toggle", catalogCtl.ToggleSubCategory)
		adminCatalog.DELETE("/sub-category/:id", catalogCtl.DeleteSubCategory)

		// 商品
		adminCatalog.POST("/product", catalogCtl.CreateProduct)
		adminCatalog.GET("/products/by-sub-category/:sub_id", catalogCtl.ListProducts)
		adminCatalog.PUT("/product/:product_id", catalogCtl.UpdateProduct)
		adminCatalog.PATCH("/product/:product_id/toggle", catalogCtl.ToggleProduct)
		adminCatalog.DELETE("/product/:product_id", catalogCtl.DeleteProduct)

		// 商品位图
		adminCatalog.POST("/product/:product_id/type-image", catalogCtl.UploadTypeImage)
		adminCatalog.GET("/product/:product_id/type-images", catalogCtl.ListTypeImages)
		adminCatalog.DELETE("/product/:product_id/type-image/:type_name", catalogCtl.DeleteTypeImage)
	}

	adminCases := r.Group("/admin/cases", middleware.AdminAuth())
	{
		// 品牌
		adminCases.POST("/main-category", caseCtl.CreateMainCategory)
		adminCases.GET("/main-categories", caseCtl.ListMainCategories)
		adminCases.PUT("/main-category/:id", caseCtl.UpdateMainCategory)
		adminCases.PATCH("/main-category/:id/toggle", caseCtl.ToggleMainCategory)
		adminCases.DELETE("/main-category/:id", caseCtl.DeleteMainCategory)

		// 机型
		adminCases.POST("/phone", caseCtl.CreatePhone)
		adminCases.GET("/phones/by-main/:main_id", caseCtl.ListPhones)
		adminCases.PUT("/phone/:id", caseCtl.UpdatePhone)
		adminCases.PATCH("/phone/:id/toggle", caseCtl.TogglePhone)
		adminCases.DELETE("/phone/:id", caseCtl.DeletePhone)

		// 型号
		adminCases.POST("/model", caseCtl.CreateModel)
		adminCases.GET("/models/by-phone/:phone_id", caseCtl.ListModels)
		adminCases.PUT("/model/:id", caseCtl.UpdateModel)
		adminCases.PATCH("/model/:id/toggle", caseCtl.ToggleModel)
		adminCases.DELETE("/model/:id", caseCtl.DeleteModel)

		// 壳商品
		adminCases.POST("/case-product", caseCtl.CreateProduct)
		adminCases.GET("/case-products", caseCtl.ListProducts)
		adminCases.PUT("/case-product/:case_product_id", caseCtl.UpdateProduct)
		adminCases.PATCH("/case-product/:case_product_id/toggle", caseCtl.ToggleProduct)
		adminCases.DELETE("/case-product/:case_product_id", caseCtl.DeleteProduct)

		// 壳位图
		adminCases.POST("/case-product/:case_product_id/variant", caseCtl.UploadVariant)
		adminCases.GET("/case-product/:case_product_id/variants", caseCtl.ListVariants)
		adminCases.PATCH("/variant/:variant_id/toggle", caseCtl.ToggleVariant)
		adminCases.DELETE("/case-product/:case_product_id/variant/:type_name", caseCtl.DeleteVariant)

		// 兼容映射
		adminCases.POST("/case-product/:case_product_id/map-model", caseCtl.MapModel)
		adminCases.GET("/case-product/:case_product_id/mapped-models", caseCtl.ListMappedModels)
		adminCases.PATCH("/map/:map_id/toggle", caseCtl.ToggleMap)
	}

	// 3. 用户鉴权
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.UserLogin)
	}

	// 4. 前台公开读，只下发启用数据
	catalog := r.Group("/catalog")
	{
		catalog.GET("/main-categories", catalogCtl.UserMainCategories)
		catalog.GET("/sub-categories/by-main/:main_id", catalogCtl.UserSubCategories)
		catalog.GET("/products", catalogCtl.UserProducts)
		catalog.GET("/products/by-sub-category/:sub_id", catalogCtl.UserProductsBySub)
	}

	cases := r.Group("/cases")
	{
		cases.GET("/main-categories", caseCtl.PublicMainCategories)
		cases.GET("/phones/by-main/:main_id", caseCtl.PublicPhones)
		cases.GET("/models/by-phone/:phone_id", caseCtl.PublicModels)
		cases.GET("/products", caseCtl.PublicProducts)
		cases.GET("/product/:case_product_id/variants", caseCtl.PublicVariants)
		cases.GET("/product/:case_product_id/allowed-models", caseCtl.PublicAllowedModels)
	}

	// 5. 购物车，要求用户令牌
	cart := r.Group("/cart", middleware.UserAuth())
	{
		cart.POST("/add", cartCtl.Add)
		cart.GET("", cartCtl.List)
		cart.DELETE("/remove/:product_id", cartCtl.Remove)
	}
}
