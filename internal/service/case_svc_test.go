package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
)

func setupCaseTest(t *testing.T) (*CaseCatalogService, *gorm.DB) {
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

	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}

	return NewCaseCatalogService(repository.NewCaseUnitOfWork(db), storage), db
}

// 搭一条 品牌->机型->型号 链和一个壳商品
func buildCaseTree(t *testing.T, svc *CaseCatalogService) (mainID, phoneID, modelID, productID int64) {
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
	productID, err = svc.CreateProduct(ctx, &dto.CaseProductReq{
		Title: "磨砂壳", Price: 2990,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	return mainID, phoneID, modelID, productID
}

func mapReq(mainID, phoneID, modelID int64) *dto.MapModelReq {
	return &dto.MapModelReq{
		CaseMainCategoryID: mainID,
		CasePhoneID:        phoneID,
		CaseModelID:        modelID,
	}
}

func TestCaseService_MapModel_Idempotent(t *testing.T) {
	svc, db := setupCaseTest(t)
	ctx := context.Background()
	mainID, phoneID, modelID, productID := buildCaseTree(t, svc)

	id1, already, err := svc.MapModel(ctx, productID, mapReq(mainID, phoneID, modelID))
	if err != nil {
		t.Fatalf("第一次 MapModel() error = %v", err)
	}
	if already {
		t.Error("首次映射 alreadyMapped 应为 false")
	}

	id2, already, err := svc.MapModel(ctx, productID, mapReq(mainID, phoneID, modelID))
	if err != nil {
		t.Fatalf("第二次 MapModel() error = %v", err)
	}
	if !already {
		t.Error("重复映射 alreadyMapped 应为 true")
	}
	if id1 != id2 {
		t.Errorf("重复映射应返回原行 ID: %d != %d", id1, id2)
	}

	var count int64
	db.Model(&model.CaseProductModelMap{}).Count(&count)
	if count != 1 {
		t.Errorf("映射表应只有 1 行, 实际 %d", count)
	}
}

func TestCaseService_AllowedModels(t *testing.T) {
	svc, _ := setupCaseTest(t)
	ctx := context.Background()
	mainID, phoneID, modelID, productID := buildCaseTree(t, svc)

	if _, _, err := svc.MapModel(ctx, productID, mapReq(mainID, phoneID, modelID)); err != nil {
		t.Fatalf("MapModel() error = %v", err)
	}

	rows, err := svc.AllowedModels(ctx, productID)
	if err != nil {
		t.Fatalf("AllowedModels() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("三级全启用应下发 1 行, 实际 %d", len(rows))
	}
	if rows[0].MainName != "Apple" || rows[0].PhoneName != "iPhone 15" || rows[0].ModelName != "iPhone 15 Pro" {
		t.Errorf("名称联查不对: %+v", rows[0])
	}

	// 机型停用后整条映射不下发
	if err := svc.TogglePhone(ctx, phoneID, false); err != nil {
		t.Fatalf("TogglePhone() error = %v", err)
	}
	rows, _ = svc.AllowedModels(ctx, productID)
	if len(rows) != 0 {
		t.Errorf("机型停用后不应下发, 实际 %d 行", len(rows))
	}

	// 恢复机型，停用映射本身
	if err := svc.TogglePhone(ctx, phoneID, true); err != nil {
		t.Fatalf("TogglePhone() error = %v", err)
	}
	maps, _ := svc.ListMappedModels(ctx, productID)
	if err := svc.ToggleMap(ctx, maps[0].ID, false); err != nil {
		t.Fatalf("ToggleMap() error = %v", err)
	}
	rows, _ = svc.AllowedModels(ctx, productID)
	if len(rows) != 0 {
		t.Errorf("映射停用后不应下发, 实际 %d 行", len(rows))
	}
}

func TestCaseService_AllowedModels_DanglingAncestor(t *testing.T) {
	svc, db := setupCaseTest(t)
	ctx := context.Background()
	mainID, phoneID, modelID, productID := buildCaseTree(t, svc)

	if _, _, err := svc.MapModel(ctx, productID, mapReq(mainID, phoneID, modelID)); err != nil {
		t.Fatalf("MapModel() error = %v", err)
	}

	// 直接抹掉品牌行，映射变成悬挂引用
	if err := db.Delete(&model.CaseMainCategory{}, mainID).Error; err != nil {
		t.Fatalf("删除品牌行失败: %v", err)
	}

	rows, err := svc.AllowedModels(ctx, productID)
	if err != nil {
		t.Fatalf("悬挂映射应静默跳过而不是报错: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("悬挂映射不应下发, 实际 %d 行", len(rows))
	}
}

func TestCaseService_UploadVariant_ReplacesSameType(t *testing.T) {
	svc, db := setupCaseTest(t)
	ctx := context.Background()
	_, _, _, productID := buildCaseTree(t, svc)

	id1, err := svc.UploadVariant(ctx, productID, "type1", testImage("first.png"))
	if err != nil {
		t.Fatalf("第一次 UploadVariant() error = %v", err)
	}
	variants, _ := svc.ListVariants(ctx, productID)
	firstPath := variants[0].Image

	id2, err := svc.UploadVariant(ctx, productID, "type1", testImage("second.png"))
	if err != nil {
		t.Fatalf("第二次 UploadVariant() error = %v", err)
	}
	if id1 == id2 {
		t.Error("替换后应产生新行 ID")
	}

	var count int64
	db.Model(&model.CaseVariant{}).
		Where("case_product_id = ? AND type_name = ?", productID, "type1").
		Count(&count)
	if count != 1 {
		t.Errorf("同位置应只有 1 行, 实际 %d", count)
	}
	if fileExists(firstPath) {
		t.Errorf("旧文件应已删除: %s", firstPath)
	}
}

func TestCaseService_ActiveVariants_HidesToggledOff(t *testing.T) {
	svc, _ := setupCaseTest(t)
	ctx := context.Background()
	_, _, _, productID := buildCaseTree(t, svc)

	id, err := svc.UploadVariant(ctx, productID, "type2", testImage("a.png"))
	if err != nil {
		t.Fatalf("UploadVariant() error = %v", err)
	}

	active, err := svc.ListActiveVariants(ctx, productID)
	if err != nil {
		t.Fatalf("ListActiveVariants() error = %v", err)
	}
	if _, ok := active["type2"]; !ok {
		t.Fatal("新上传的位图应为启用状态")
	}

	if err := svc.ToggleVariant(ctx, id, false); err != nil {
		t.Fatalf("ToggleVariant() error = %v", err)
	}
	active, _ = svc.ListActiveVariants(ctx, productID)
	if _, ok := active["type2"]; ok {
		t.Error("停用后的位图不应出现在前台映射")
	}
}

func TestCaseService_DeleteVariant_NotFound(t *testing.T) {
	svc, _ := setupCaseTest(t)
	_, _, _, productID := buildCaseTree(t, svc)

	err := svc.DeleteVariant(context.Background(), productID, "type5")
	if err != ErrCaseVariantNotFound {
		t.Errorf("期望 ErrCaseVariantNotFound, 实际 %v", err)
	}
}

func TestCaseService_DeleteProduct_Cascade(t *testing.T) {
	svc, db := setupCaseTest(t)
	ctx := context.Background()
	mainID, phoneID, modelID, productID := buildCaseTree(t, svc)

	if _, err := svc.UploadVariant(ctx, productID, "type1", testImage("v.png")); err != nil {
		t.Fatalf("UploadVariant() error = %v", err)
	}
	variants, _ := svc.ListVariants(ctx, productID)
	variantPath := variants[0].Image

	if _, _, err := svc.MapModel(ctx, productID, mapReq(mainID, phoneID, modelID)); err != nil {
		t.Fatalf("MapModel() error = %v", err)
	}

	if err := svc.DeleteProduct(ctx, productID); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}

	for _, m := range []interface{}{
		&model.CaseProduct{}, &model.CaseVariant{}, &model.CaseProductModelMap{},
	} {
		var count int64
		db.Model(m).Count(&count)
		if count != 0 {
			t.Errorf("%T 表应清空, 实际剩 %d 行", m, count)
		}
	}
	if fileExists(variantPath) {
		t.Errorf("位图文件应已删除: %s", variantPath)
	}
}

func TestCaseService_DeleteMainCategory_Cascade(t *testing.T) {
	svc, db := setupCaseTest(t)
	ctx := context.Background()
	mainID, _, _, _ := buildCaseTree(t, svc)

	if err := svc.DeleteMainCategory(ctx, mainID); err != nil {
		t.Fatalf("DeleteMainCategory() error = %v", err)
	}

	for _, m := range []interface{}{
		&model.CaseMainCategory{}, &model.CasePhone{}, &model.CaseModel{},
	} {
		var count int64
		db.Model(m).Count(&count)
		if count != 0 {
			t.Errorf("%T 表应清空, 实际剩 %d 行", m, count)
		}
	}
}
