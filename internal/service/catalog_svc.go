package service

import (
	"context"

	"go.uber.org/zap"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
	"casemall_v1_202608/pkg/logger"
)

// ProductThumbnailType 前台商品卡片取 type1 位图做主图
const ProductThumbnailType = "type1"

// UploadedFile 已读入内存的上传文件
type UploadedFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ==================== CatalogService 普通目录服务 ====================

// CatalogService 一级分类 / 二级分类 / 商品 / 商品位图
//
// 级联删除的行删除跑在一个事务里，文件删除在提交之后执行：
// 提交失败时磁盘不丢文件，文件删除失败只记日志，由清理任务兜底。
type CatalogService struct {
	uow     *repository.CatalogUnitOfWork
	storage StorageProvider
}

// NewCatalogService 创建目录服务
func NewCatalogService(uow *repository.CatalogUnitOfWork, storage StorageProvider) *CatalogService {
	return &CatalogService{uow: uow, storage: storage}
}

// removeFiles 提交后的文件清理，失败只记日志
func removeFiles(ctx context.Context, storage StorageProvider, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := storage.Delete(ctx, p); err != nil {
			logger.L.Warn("删除媒体文件失败", zap.String("path", p), zap.Error(err))
		}
	}
}

// ==================== 一级分类 ====================

// CreateMainCategory 新建一级分类，图片必传
func (s *CatalogService) CreateMainCategory(ctx context.Context, name string, image *UploadedFile) (int64, error) {
	path, err := s.storage.Upload(ctx, MediaDirProducts, image.Data, image.Filename, image.ContentType)
	if err != nil {
		return 0, err
	}

	cat := &model.MainCategory{Name: name, Image: path, IsActive: true}
	if err := s.uow.MainCategories.Create(ctx, cat); err != nil {
		return 0, err
	}
	return cat.ID, nil
}

// ListMainCategories 后台列表
func (s *CatalogService) ListMainCategories(ctx context.Context) ([]model.MainCategory, error) {
	return s.uow.MainCategories.List(ctx)
}

// ListActiveMainCategories 前台列表
func (s *CatalogService) ListActiveMainCategories(ctx context.Context) ([]model.MainCategory, error) {
	return s.uow.MainCategories.ListActive(ctx)
}

// UpdateMainCategory 更新名称，图片可选；传了新图则旧图在行更新成功后删除
func (s *CatalogService) UpdateMainCategory(ctx context.Context, id int64, name string, image *UploadedFile) error {
	cat, err := s.uow.MainCategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrMainCategoryNotFound
	}

	oldImage := ""
	cat.Name = name
	if image != nil {
		path, err := s.storage.Upload(ctx, MediaDirProducts, image.Data, image.Filename, image.ContentType)
		if err != nil {
			return err
		}
		oldImage = cat.Image
		cat.Image = path
	}

	if err := s.uow.MainCategories.Update(ctx, cat); err != nil {
		return err
	}
	if oldImage != "" {
		removeFiles(ctx, s.storage, []string{oldImage})
	}
	return nil
}

// ToggleMainCategory 上下架
func (s *CatalogService) ToggleMainCategory(ctx context.Context, id int64, active bool) error {
	cat, err := s.uow.MainCategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrMainCategoryNotFound
	}
	cat.IsActive = active
	return s.uow.MainCategories.Update(ctx, cat)
}

// DeleteMainCategory 整棵级联删除：位图行 -> 商品行 -> 二级分类行 -> 一级分类行
func (s *CatalogService) DeleteMainCategory(ctx context.Context, id int64) error {
	var orphaned []string

	err := s.uow.Transaction(ctx, func(uow *repository.CatalogUnitOfWork) error {
		cat, err := uow.MainCategories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return ErrMainCategoryNotFound
		}
		orphaned = append(orphaned, cat.Image)

		subs, err := uow.SubCategories.ListByMain(ctx, id)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			orphaned = append(orphaned, sub.Image)

			products, err := uow.Products.ListBySub(ctx, sub.ID)
			if err != nil {
				return err
			}
			for _, p := range products {
				images, err := uow.Images.ListByProduct(ctx, p.ID)
				if err != nil {
					return err
				}
				for _, img := range images {
					orphaned = append(orphaned, img.Image)
				}
				if err := uow.Images.DeleteByProduct(ctx, p.ID); err != nil {
					return err
				}
			}
			if err := uow.Products.DeleteBySub(ctx, sub.ID); err != nil {
				return err
			}
		}

		if err := uow.SubCategories.DeleteByMain(ctx, id); err != nil {
			return err
		}
		return uow.MainCategories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	removeFiles(ctx, s.storage, orphaned)
	return nil
}

// ==================== 二级分类 ====================

// CreateSubCategory 新建二级分类，图片必传
func (s *CatalogService) CreateSubCategory(ctx context.Context, name string, mainCategoryID int64, image *UploadedFile) (int64, error) {
	path, err := s.storage.Upload(ctx, MediaDirProducts, image.Data, image.Filename, image.ContentType)
	if err != nil {
		return 0, err
	}

	sub := &model.SubCategory{
		Name:           name,
		Image:          path,
		MainCategoryID: mainCategoryID,
		IsActive:       true,
	}
	if err := s.uow.SubCategories.Create(ctx, sub); err != nil {
		return 0, err
	}
	return sub.ID, nil
}

// ListSubCategories 后台列表
func (s *CatalogService) ListSubCategories(ctx context.Context, mainID int64) ([]model.SubCategory, error) {
	return s.uow.SubCategories.ListByMain(ctx, mainID)
}

// ListActiveSubCategories 前台列表，祖先链必须启用
func (s *CatalogService) ListActiveSubCategories(ctx context.Context, mainID int64) ([]model.SubCategory, error) {
	return s.uow.SubCategories.ListActiveByMain(ctx, mainID)
}

// UpdateSubCategory 更新，图片可选
func (s *CatalogService) UpdateSubCategory(ctx context.Context, id int64, name string, mainCategoryID int64, image *UploadedFile) error {
	sub, err := s.uow.SubCategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubCategoryNotFound
	}

	oldImage := ""
	sub.Name = name
	sub.MainCategoryID = mainCategoryID
	if image != nil {
		path, err := s.storage.Upload(ctx, MediaDirProducts, image.Data, image.Filename, image.ContentType)
		if err != nil {
			return err
		}
		oldImage = sub.Image
		sub.Image = path
	}

	if err := s.uow.SubCategories.Update(ctx, sub); err != nil {
		return err
	}
	if oldImage != "" {
		removeFiles(ctx, s.storage, []string{oldImage})
	}
	return nil
}

// ToggleSubCategory 上下架
func (s *CatalogService) ToggleSubCategory(ctx context.Context, id int64, active bool) error {
	sub, err := s.uow.SubCategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubCategoryNotFound
	}
	sub.IsActive = active
	return s.uow.SubCategories.Update(ctx, sub)
}

// DeleteSubCategory 一层级联：位图行 -> 商品行 -> 二级分类行
func (s *CatalogService) DeleteSubCategory(ctx context.Context, id int64) error {
	var orphaned []string

	err := s.uow.Transaction(ctx, func(uow *repository.CatalogUnitOfWork) error {
		sub, err := uow.SubCategories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sub == nil {
			return ErrSubCategoryNotFound
		}
		orphaned = append(orphaned, sub.Image)

		products, err := uow.Products.ListBySub(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range products {
			images, err := uow.Images.ListByProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			for _, img := range images {
				orphaned = append(orphaned, img.Image)
			}
			if err := uow.Images.DeleteByProduct(ctx, p.ID); err != nil {
				return err
			}
		}

		if err := uow.Products.DeleteBySub(ctx, id); err != nil {
			return err
		}
		return uow.SubCategories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	removeFiles(ctx, s.storage, orphaned)
	return nil
}

// ==================== 商品 ====================

// CreateProduct 新建商品
func (s *CatalogService) CreateProduct(ctx context.Context, req *dto.ProductReq) (int64, error) {
	p := &model.Product{
		Name:            req.Name,
		Subtitle:        req.Subtitle,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		SubCategoryID:   req.SubCategoryID,
		IsAvailable:     true,
	}
	if err := s.uow.Products.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// ListProducts 后台列表
func (s *CatalogService) ListProducts(ctx context.Context, subID int64) ([]model.Product, error) {
	return s.uow.Products.ListBySub(ctx, subID)
}

// UpdateProduct 更新商品
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *dto.ProductReq) error {
	p, err := s.uow.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	p.Name = req.Name
	p.Subtitle = req.Subtitle
	p.Price = req.Price
	p.DiscountPercent = req.DiscountPercent
	p.SubCategoryID = req.SubCategoryID
	return s.uow.Products.Update(ctx, p)
}

// ToggleProduct 上下架
func (s *CatalogService) ToggleProduct(ctx context.Context, id int64, available bool) error {
	p, err := s.uow.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	p.IsAvailable = available
	return s.uow.Products.Update(ctx, p)
}

// DeleteProduct 删除商品及其位图
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	var orphaned []string

	err := s.uow.Transaction(ctx, func(uow *repository.CatalogUnitOfWork) error {
		p, err := uow.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}

		images, err := uow.Images.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		for _, img := range images {
			orphaned = append(orphaned, img.Image)
		}
		if err := uow.Images.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return uow.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	removeFiles(ctx, s.storage, orphaned)
	return nil
}

// ==================== 商品位图 ====================

// UploadTypeImage 上传位图，同位置已有图片则整体替换（旧行删除、旧文件提交后删除）
func (s *CatalogService) UploadTypeImage(ctx context.Context, productID int64, typeName string, image *UploadedFile) error {
	p, err := s.uow.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	old, err := s.uow.Images.GetByProductAndType(ctx, productID, typeName)
	if err != nil {
		return err
	}

	path, err := s.storage.Upload(ctx, MediaDirProducts, image.Data, image.Filename, image.ContentType)
	if err != nil {
		return err
	}

	err = s.uow.Transaction(ctx, func(uow *repository.CatalogUnitOfWork) error {
		if err := uow.Images.DeleteByProductAndType(ctx, productID, typeName); err != nil {
			return err
		}
		return uow.Images.Create(ctx, &model.ProductImage{
			ProductID: productID,
			TypeName:  typeName,
			Image:     path,
		})
	})
	if err != nil {
		return err
	}

	if old != nil {
		removeFiles(ctx, s.storage, []string{old.Image})
	}
	return nil
}

// ListTypeImages 返回 type -> 路径 映射
func (s *CatalogService) ListTypeImages(ctx context.Context, productID int64) (map[string]string, error) {
	images, err := s.uow.Images.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(images))
	for _, img := range images {
		result[img.TypeName] = img.Image
	}
	return result, nil
}

// DeleteTypeImage 删除位置图片，位置为空是幂等的
func (s *CatalogService) DeleteTypeImage(ctx context.Context, productID int64, typeName string) error {
	old, err := s.uow.Images.GetByProductAndType(ctx, productID, typeName)
	if err != nil {
		return err
	}
	if old == nil {
		return nil
	}

	if err := s.uow.Images.DeleteByProductAndType(ctx, productID, typeName); err != nil {
		return err
	}
	removeFiles(ctx, s.storage, []string{old.Image})
	return nil
}

// ==================== 前台读 ====================

// ListVisibleProducts 前台商品卡片，整条祖先链启用，附 type1 主图
func (s *CatalogService) ListVisibleProducts(ctx context.Context) ([]dto.ProductCard, error) {
	products, err := s.uow.Products.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	return s.toProductCards(ctx, products)
}

// ListVisibleProductsBySub 按二级分类过滤的前台商品卡片
func (s *CatalogService) ListVisibleProductsBySub(ctx context.Context, subID int64) ([]dto.ProductCard, error) {
	products, err := s.uow.Products.ListVisibleBySub(ctx, subID)
	if err != nil {
		return nil, err
	}
	return s.toProductCards(ctx, products)
}

func (s *CatalogService) toProductCards(ctx context.Context, products []model.Product) ([]dto.ProductCard, error) {
	cards := make([]dto.ProductCard, 0, len(products))
	for _, p := range products {
		card := dto.ProductCard{
			ID:              p.ID,
			Name:            p.Name,
			Subtitle:        p.Subtitle,
			Price:           p.Price,
			DiscountPercent: p.DiscountPercent,
			SubCategoryID:   p.SubCategoryID,
		}
		img, err := s.uow.Images.GetByProductAndType(ctx, p.ID, ProductThumbnailType)
		if err != nil {
			return nil, err
		}
		if img != nil {
			card.Image = &img.Image
		}
		cards = append(cards, card)
	}
	return cards, nil
}
