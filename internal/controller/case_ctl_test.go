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

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
	"casemall_v1_202608/internal/service"
)

func setupCaseRouter(t *testing.T) (*gin.Engine, *service.CaseCatalogService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	err = db.AutoMigrate(
		&model.CaseMainCategory{}, &model.CasePhone{}, &model.CaseModel{},
		&model.CaseProduct{}, &model.CaseVariant{}, &model.CaseProductModelMap{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	storage, err := service.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	svc := service.NewCaseCatalogService(repository.NewCaseUnitOfWork(db), storage)
	ctl := NewCaseController(svc)

	r := gin.New()
	r.POST("/case-product/:case_product_id/map-model", ctl.MapModel)
	r.GET("/product/:case_product_id/allowed-models", ctl.PublicAllowedModels)
	return r, svc
}

func seedCaseChain(t *testing.T, svc *service.CaseCatalogService) (mainID, phoneID, modelID, productID int64) {
	t.Helper()
	ctx := context.Background()
	var err error

	mainID, err = svc.CreateMainCategory(ctx, "Apple")
	if err != nil {
		t.Fatalf("CreateMainCategory() error = %v", err)
	}
	phoneID, err = svc.CreatePhone(ctx, "iPhone 15", mainID)
	if err != nil {
		t.Fatalf("CreatePhone() error = %v", err)
	}
	modelID, err = svc.CreateModel(ctx, "iPhone 15 Pro", phoneID)
	if err != nil {
		t.Fatalf("CreateModel() error = %v", err)
	}
	productID, err = svc.CreateProduct(ctx, &dto.CaseProductReq{Title: "磨砂壳", Price: 2990})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	return mainID, phoneID, modelID, productID
}

func postMapModel(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/case-product/1/map-model",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestMapModel_Responses(t *testing.T) {
	r, svc := setupCaseRouter(t)
	seedCaseChain(t, svc)

	body := "case_main_category_id=1&case_phone_id=1&case_model_id=1"

	// 首次映射返回新行 ID
	w := postMapModel(r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("首次映射应 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	var first map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if first["message"] != "Mapped" {
		t.Errorf("首次映射 message 应为 Mapped, 实际 %v", first["message"])
	}
	if _, ok := first["id"]; !ok {
		t.Error("首次映射应返回 id")
	}

	// 重复映射返回 Already mapped，不带新 id
	w = postMapModel(r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("重复映射应 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	var second map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if second["message"] != "Already mapped" {
		t.Errorf("重复映射 message 应为 Already mapped, 实际 %v", second["message"])
	}
}

func TestMapModel_MissingFields(t *testing.T) {
	r, svc := setupCaseRouter(t)
	seedCaseChain(t, svc)

	w := postMapModel(r, "case_model_id=1")
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺祖先字段应 400, 实际 %d", w.Code)
	}
}

func TestAllowedModels_Endpoint(t *testing.T) {
	r, svc := setupCaseRouter(t)
	seedCaseChain(t, svc)

	postMapModel(r, "case_main_category_id=1&case_phone_id=1&case_model_id=1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/product/1/allowed-models", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("allowed-models 应 200, 实际 %d", w.Code)
	}

	var rows []dto.AllowedModel
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("应下发 1 行, 实际 %d", len(rows))
	}
	if rows[0].ModelName != "iPhone 15 Pro" {
		t.Errorf("型号名不对: %+v", rows[0])
	}
}
