package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
	"casemall_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupCatalogRouter(t *testing.T) (*gin.Engine, *service.CatalogService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	err = db.AutoMigrate(
		&model.MainCategory{}, &model.SubCategory{},
		&model.Product{}, &model.ProductImage{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	storage, err := service.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	svc := service.NewCatalogService(repository.NewCatalogUnitOfWork(db), storage)
	ctl := NewCatalogController(svc)

	r := gin.New()
	r.PATCH("/main-category/:id/toggle", ctl.ToggleMainCategory)
	r.GET("/main-categories", ctl.UserMainCategories)
	return r, svc
}

func createMainCategory(t *testing.T, svc *service.CatalogService) int64 {
	t.Helper()
	id, err := svc.CreateMainCategory(context.Background(), "手机壳", &service.UploadedFile{
		Data:        []byte("img"),
		Filename:    "cat.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("CreateMainCategory() error = %v", err)
	}
	return id
}

func activeCategoryCount(t *testing.T, r *gin.Engine) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/main-categories", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("前台列表应 200, 实际 %d", w.Code)
	}
	var cats []model.MainCategory
	if err := json.Unmarshal(w.Body.Bytes(), &cats); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return len(cats)
}

// 开关要同时吃表单字符串和 JSON 布尔两种写法
func TestToggleMainCategory_FormEncoding(t *testing.T) {
	r, svc := setupCatalogRouter(t)
	createMainCategory(t, svc)

	// form 下架
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/main-category/1/toggle",
		strings.NewReader("is_active=false"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("表单 toggle 应 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	if n := activeCategoryCount(t, r); n != 0 {
		t.Errorf("下架后前台应为空, 实际 %d", n)
	}

	// form 大小写不敏感
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/main-category/1/toggle",
		strings.NewReader("is_active=True"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("表单 True 应 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	if n := activeCategoryCount(t, r); n != 1 {
		t.Errorf("重新上架后前台应有 1 个, 实际 %d", n)
	}
}

func TestToggleMainCategory_JSONEncoding(t *testing.T) {
	r, svc := setupCatalogRouter(t)
	createMainCategory(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/main-category/1/toggle",
		strings.NewReader(`{"is_active": false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("JSON toggle 应 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	if n := activeCategoryCount(t, r); n != 0 {
		t.Errorf("下架后前台应为空, 实际 %d", n)
	}
}

func TestToggleMainCategory_BadRequests(t *testing.T) {
	r, svc := setupCatalogRouter(t)
	createMainCategory(t, svc)

	// is_active 缺失
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/main-category/1/toggle",
		strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺 is_active 应 400, 实际 %d", w.Code)
	}

	// ID 不是数字
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/main-category/abc/toggle",
		strings.NewReader("is_active=true"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 ID 应 400, 实际 %d", w.Code)
	}

	// 不存在的分类
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/main-category/999/toggle",
		strings.NewReader("is_active=true"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("不存在的分类应 404, 实际 %d", w.Code)
	}
}
