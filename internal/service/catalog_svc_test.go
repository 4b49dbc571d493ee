package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
)

func setupCatalogTest(t *testing.T) (*CatalogService, *gorm.DB) {
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

	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}

	return NewCatalogService(repository.NewCatalogUnitOfWork(db), storage), db
}

func testImage(name string) *UploadedFile {
	return &UploadedFile{
		Data:        []byte("fake image bytes"),
		Filename:    name,
		ContentType: "image/png",
	}
}

// fileExists 按存储路径检查磁盘文件
func fileExists(path string) bool {
	_, err := os.Stat(filepath.FromSlash(path))
	return err == nil
}

func TestCatalogService_ToggleMainCategory(t *testing.T) {
	svc, _ := setupCatalogTest(t)
	ctx := context.Background()

	id, err := svc.CreateMainCategory(ctx, "手机壳", testImage("cat.png"))
	if err != nil {
		t.Fatalf("CreateMainCategory() error = %v", err)
	}

	// 新建即启用
	active, err := svc.ListActiveMainCategories(ctx)
	if err != nil {
		t.Fatalf("ListActiveMainCategories() error = %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("前台应看到 1 个分类, 实际 %d", len(active))
	}

	// 下架后前台不可见
	if err := svc.ToggleMainCategory(ctx, id, false); err != nil {
		t.Fatalf("ToggleMainCategory(false) error = %v", err)
	}
	active, _ = svc.ListActiveMainCategories(ctx)
	if len(active) != 0 {
		t.Errorf("下架后前台应看不到分类, 实际 %d", len(active))
	}

	// 再上架恢复可见
	if err := svc.ToggleMainCategory(ctx, id, true); err != nil {
		t.Fatalf("ToggleMainCategory(true) error = %v", err)
	}
	active, _ = svc.ListActiveMainCategories(ctx)
	if len(active) != 1 {
		t.Errorf("重新上架后前台应看到分类, 实际 %d", len(active))
	}
}

func TestCatalogService_ToggleMainCategory_NotFound(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	err := svc.ToggleMainCategory(context.Background(), 999, true)
	if err != ErrMainCategoryNotFound {
		t.Errorf("期望 ErrMainCategoryNotFound, 实际 %v", err)
	}
}

// 搭一棵 一级->二级->商品 的测试树
func buildCatalogTree(t *testing.T, svc *CatalogService) (mainID, subID, productID int64) {
	ctx := context.Background()

	mainID, err := svc.CreateMainCategory(ctx, "手机壳", testImage("main.png"))
	if err != nil {
		t.Fatalf("CreateMainCategory() error = %v", err)
	}
	subID, err = svc.CreateSubCategory(ctx, "硅胶壳", mainID, testImage("sub.png"))
	if err != nil {
		t.Fatalf("CreateSubCategory() error = %v", err)
	}
	productID, err = svc.CreateProduct(ctx, &dto.ProductReq{
		Name:          "星空硅胶壳",
		Subtitle:      "亲肤硅胶",
		Price:         3990,
		SubCategoryID: subID,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	return mainID, subID, productID
}

func TestCatalogService_UploadTypeImage_ReplacesSameType(t *testing.T) {
	svc, db := setupCatalogTest(t)
	ctx := context.Background()
	_, _, productID := buildCatalogTree(t, svc)

	if err := svc.UploadTypeImage(ctx, productID, "type1", testImage("first.png")); err != nil {
		t.Fatalf("第一次 UploadTypeImage() error = %v", err)
	}
	images, err := svc.ListTypeImages(ctx, productID)
	if err != nil {
		t.Fatalf("ListTypeImages() error = %v", err)
	}
	firstPath := images["type1"]
	if !fileExists(firstPath) {
		t.Fatalf("第一张图应落盘: %s", firstPath)
	}

	// 同位置再传，行替换、旧文件删除
	if err := svc.UploadTypeImage(ctx, productID, "type1", testImage("second.png")); err != nil {
		t.Fatalf("第二次 UploadTypeImage() error = %v", err)
	}

	var count int64
	db.Model(&model.ProductImage{}).
		Where("product_id = ? AND type_name = ?", productID, "type1").
		Count(&count)
	if count != 1 {
		t.Errorf("同位置应只有 1 行, 实际 %d", count)
	}

	if fileExists(firstPath) {
		t.Errorf("旧文件应已删除: %s", firstPath)
	}
	images, _ = svc.ListTypeImages(ctx, productID)
	if !fileExists(images["type1"]) {
		t.Errorf("新文件应落盘: %s", images["type1"])
	}
}

func TestCatalogService_UploadTypeImage_ProductNotFound(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	err := svc.UploadTypeImage(context.Background(), 999, "type1", testImage("a.png"))
	if err != ErrProductNotFound {
		t.Errorf("期望 ErrProductNotFound, 实际 %v", err)
	}
}

func TestCatalogService_DeleteTypeImage_Idempotent(t *testing.T) {
	svc, _ := setupCatalogTest(t)
	ctx := context.Background()
	_, _, productID := buildCatalogTree(t, svc)

	if err := svc.UploadTypeImage(ctx, productID, "type2", testImage("a.png")); err != nil {
		t.Fatalf("UploadTypeImage() error = %v", err)
	}
	images, _ := svc.ListTypeImages(ctx, productID)
	path := images["type2"]

	if err := svc.DeleteTypeImage(ctx, productID, "type2"); err != nil {
		t.Fatalf("DeleteTypeImage() error = %v", err)
	}
	if fileExists(path) {
		t.Errorf("文件应已删除: %s", path)
	}

	// 重复删除不报错
	if err := svc.DeleteTypeImage(ctx, productID, "type2"); err != nil {
		t.Errorf("重复删除应幂等, 实际 error = %v", err)
	}
}

func TestCatalogService_DeleteMainCategory_Cascade(t *testing.T) {
	svc, db := setupCatalogTest(t)
	ctx := context.Background()
	mainID, _, productID := buildCatalogTree(t, svc)

	if err := svc.UploadTypeImage(ctx, productID, "type1", testImage("p1.png")); err != nil {
		t.Fatalf("UploadTypeImage() error = %v", err)
	}
	images, _ := svc.ListTypeImages(ctx, productID)
	imagePath := images["type1"]

	if err := svc.DeleteMainCategory(ctx, mainID); err != nil {
		t.Fatalf("DeleteMainCategory() error = %v", err)
	}

	// 整棵树的行都应清空
	for _, m := range []interface{}{
		&model.MainCategory{}, &model.SubCategory{},
		&model.Product{}, &model.ProductImage{},
	} {
		var count int64
		db.Model(m).Count(&count)
		if count != 0 {
			t.Errorf("%T 表应清空, 实际剩 %d 行", m, count)
		}
	}

	if fileExists(imagePath) {
		t.Errorf("级联删除后位图文件应已删除: %s", imagePath)
	}
}

func TestCatalogService_DeleteSubCategory_KeepsSiblings(t *testing.T) {
	svc, db := setupCatalogTest(t)
	ctx := context.Background()
	mainID, subID, _ := buildCatalogTree(t, svc)

	// 兄弟二级分类不受影响
	siblingID, err := svc.CreateSubCategory(ctx, "透明壳", mainID, testImage("sibling.png"))
	if err != nil {
		t.Fatalf("CreateSubCategory() error = %v", err)
	}

	if err := svc.DeleteSubCategory(ctx, subID); err != nil {
		t.Fatalf("DeleteSubCategory() error = %v", err)
	}

	var productCount int64
	db.Model(&model.Product{}).Count(&productCount)
	if productCount != 0 {
		t.Errorf("被删二级分类下的商品应清空, 实际剩 %d", productCount)
	}

	sibling, err := svc.uow.SubCategories.GetByID(ctx, siblingID)
	if err != nil || sibling == nil {
		t.Errorf("兄弟二级分类应保留: sub=%v err=%v", sibling, err)
	}
}

func TestCatalogService_VisibleProducts(t *testing.T) {
	svc, _ := setupCatalogTest(t)
	ctx := context.Background()
	mainID, _, productID := buildCatalogTree(t, svc)

	if err := svc.UploadTypeImage(ctx, productID, "type1", testImage("thumb.png")); err != nil {
		t.Fatalf("UploadTypeImage() error = %v", err)
	}

	cards, err := svc.ListVisibleProducts(ctx)
	if err != nil {
		t.Fatalf("ListVisibleProducts() error = %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("前台应看到 1 个商品, 实际 %d", len(cards))
	}
	if cards[0].Image == nil {
		t.Error("商品卡片应带 type1 主图")
	}

	// 一级分类下架后整条链不可见
	if err := svc.ToggleMainCategory(ctx, mainID, false); err != nil {
		t.Fatalf("ToggleMainCategory() error = %v", err)
	}
	cards, _ = svc.ListVisibleProducts(ctx)
	if len(cards) != 0 {
		t.Errorf("一级分类下架后商品应不可见, 实际 %d", len(cards))
	}
}

func TestCatalogService_VisibleProducts_NoThumbnail(t *testing.T) {
	svc, _ := setupCatalogTest(t)
	ctx := context.Background()
	buildCatalogTree(t, svc)

	// 没传 type1 时卡片主图为空而不是报错
	cards, err := svc.ListVisibleProducts(ctx)
	if err != nil {
		t.Fatalf("ListVisibleProducts() error = %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("前台应看到 1 个商品, 实际 %d", len(cards))
	}
	if cards[0].Image != nil {
		t.Errorf("没有 type1 时主图应为空, 实际 %v", *cards[0].Image)
	}
}
