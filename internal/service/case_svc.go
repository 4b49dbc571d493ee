package service

import (
	"context"

	"casemall_v1_202608/internal/api/dto"
	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
)

// ==================== CaseCatalogService 壳目录与兼容映射服务 ====================

// CaseCatalogService 品牌 / 机型 / 型号 树 + 壳商品 / 位图 树 + 兼容映射
type CaseCatalogService struct {
	uow     *repository.CaseUnitOfWork
	storage StorageProvider
}

// NewCaseCatalogService 创建壳目录服务
func NewCaseCatalogService(uow *repository.CaseUnitOfWork, storage StorageProvider) *CaseCatalogService {
	return &CaseCatalogService{uow: uow, storage: storage}
}

// ==================== 品牌 ====================

// CreateMainCategory 新建品牌
func (s *CaseCatalogService) CreateMainCategory(ctx context.Context, name string) (int64, error) {
	cat := &model.CaseMainCategory{Name: name, IsActive: true}
	if err := s.uow.MainCategories.Create(ctx, cat); err != nil {
		return 0, err
	}
	return cat.ID, nil
}

// ListMainCategories 后台列表
func (s *CaseCatalogService) ListMainCategories(ctx context.Context) ([]model.CaseMainCategory, error) {
	return s.uow.MainCategories.List(ctx)
}

// ListActiveMainCategories 前台列表
func (s *CaseCatalogService) ListActiveMainCategories(ctx context.Context) ([]model.CaseMainCategory, error) {
	return s.uow.MainCategories.ListActive(ctx)
}

// UpdateMainCategory 改名
func (s *CaseCatalogService) UpdateMainCategory(ctx context.Context, id int64, name string) error {
	cat, err := s.uow.MainCategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCaseMainCategoryNotFound
	}
	cat.Name = name
	return s.uow.MainCategories.Update(ctx, cat)
}

// ToggleMainCategory 显隐
func (s *CaseCatalogService) ToggleMainCategory(ctx context.Context, id int64, active bool) error {
	cat, err := s.uow.MainCategories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCaseMainCategoryNotFound
	}
	cat.IsActive = active
	return s.uow.MainCategories.Update(ctx, cat)
}

// DeleteMainCategory 级联删除品牌下所有机型和型号，这些层级不持有文件
func (s *CaseCatalogService) DeleteMainCategory(ctx context.Context, id int64) error {
	return s.uow.Transaction(ctx, func(uow *repository.CaseUnitOfWork) error {
		cat, err := uow.MainCategories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return ErrCaseMainCategoryNotFound
		}

		phones, err := uow.Phones.ListByMain(ctx, id)
		if err != nil {
			return err
		}
		phoneIDs := make([]int64, 0, len(phones))
		for _, p := range phones {
			phoneIDs = append(phoneIDs, p.ID)
		}

		if err := uow.Models.DeleteByPhones(ctx, phoneIDs); err != nil {
			return err
		}
		if err := uow.Phones.DeleteByMain(ctx, id); err != nil {
			return err
		}
		return uow.MainCategories.Delete(ctx, id)
	})
}

// ==================== 机型 ====================

// CreatePhone 新建机型
func (s *CaseCatalogService) CreatePhone(ctx context.Context, name string, mainCategoryID int64) (int64, error) {
	p := &model.CasePhone{Name: name, CaseMainCategoryID: mainCategoryID, IsActive: true}
	if err := s.uow.Phones.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// ListPhones 后台列表
func (s *CaseCatalogService) ListPhones(ctx context.Context, mainID int64) ([]model.CasePhone, error) {
	return s.uow.Phones.ListByMain(ctx, mainID)
}

// ListActivePhones 前台列表
func (s *CaseCatalogService) ListActivePhones(ctx context.Context, mainID int64) ([]model.CasePhone, error) {
	return s.uow.Phones.ListActiveByMain(ctx, mainID)
}

// UpdatePhone 改名
func (s *CaseCatalogService) UpdatePhone(ctx context.Context, id int64, name string) error {
	p, err := s.uow.Phones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrCasePhoneNotFound
	}
	p.Name = name
	return s.uow.Phones.Update(ctx, p)
}

// TogglePhone 显隐
func (s *CaseCatalogService) TogglePhone(ctx context.Context, id int64, active bool) error {
	p, err := s.uow.Phones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrCasePhoneNotFound
	}
	p.IsActive = active
	return s.uow.Phones.Update(ctx, p)
}

// DeletePhone 级联删除机型下所有型号
func (s *CaseCatalogService) DeletePhone(ctx context.Context, id int64) error {
	return s.uow.Transaction(ctx, func(uow *repository.CaseUnitOfWork) error {
		p, err := uow.Phones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrCasePhoneNotFound
		}

		if err := uow.Models.DeleteByPhone(ctx, id); err != nil {
			return err
		}
		return uow.Phones.Delete(ctx, id)
	})
}

// ==================== 型号 ====================

// CreateModel 新建型号
func (s *CaseCatalogService) CreateModel(ctx context.Context, name string, phoneID int64) (int64, error) {
	m := &model.CaseModel{Name: name, CasePhoneID: phoneID, IsActive: true}
	if err := s.uow.Models.Create(ctx, m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

// ListModels 后台列表
func (s *CaseCatalogService) ListModels(ctx context.Context, phoneID int64) ([]model.CaseModel, error) {
	return s.uow.Models.ListByPhone(ctx, phoneID)
}

// ListActiveModels 前台列表
func (s *CaseCatalogService) ListActiveModels(ctx context.Context, phoneID int64) ([]model.CaseModel, error) {
	return s.uow.Models.ListActiveByPhone(ctx, phoneID)
}

// UpdateModel 改名
func (s *CaseCatalogService) UpdateModel(ctx context.Context, id int64, name string) error {
	m, err := s.uow.Models.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrCaseModelNotFound
	}
	m.Name = name
	return s.uow.Models.Update(ctx, m)
}

// ToggleModel 显隐
func (s *CaseCatalogService) ToggleModel(ctx context.Context, id int64, active bool) error {
	m, err := s.uow.Models.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrCaseModelNotFound
	}
	m.IsActive = active
	return s.uow.Models.Update(ctx, m)
}

// DeleteModel 删除型号
func (s *CaseCatalogService) DeleteModel(ctx context.Context, id int64) error {
	m, err := s.uow.Models.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrCaseModelNotFound
	}
	return s.uow.Models.Delete(ctx, id)
}

// ==================== 壳商品 ====================

// CreateProduct 新建壳商品
func (s *CaseCatalogService) CreateProduct(ctx context.Context, req *dto.CaseProductReq) (int64, error) {
	p := &model.CaseProduct{
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		IsActive:        true,
	}
	if err := s.uow.Products.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// ListProducts 后台列表
func (s *CaseCatalogService) ListProducts(ctx context.Context) ([]model.CaseProduct, error) {
	return s.uow.Products.List(ctx)
}

// ListActiveProducts 前台列表
func (s *CaseCatalogService) ListActiveProducts(ctx context.Context) ([]model.CaseProduct, error) {
	return s.uow.Products.ListActive(ctx)
}

// UpdateProduct 更新壳商品
func (s *CaseCatalogService) UpdateProduct(ctx context.Context, id int64, req *dto.CaseProductReq) error {
	p, err := s.uow.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrCaseProductNotFound
	}
	p.Title = req.Title
	p.Subtitle = req.Subtitle
	p.Price = req.Price
	p.DiscountPercent = req.DiscountPercent
	return s.uow.Products.Update(ctx, p)
}

// ToggleProduct 上下架
func (s *CaseCatalogService) ToggleProduct(ctx context.Context, id int64, active bool) error {
	p, err := s.uow.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrCaseProductNotFound
	}
	p.IsActive = active
	return s.uow.Products.Update(ctx, p)
}

// DeleteProduct 级联删除位图（含文件）和映射行
func (s *CaseCatalogService) DeleteProduct(ctx context.Context, id int64) error {
	var orphaned []string

	err := s.uow.Transaction(ctx, func(uow *repository.CaseUnitOfWork) error {
		p, err := uow.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrCaseProductNotFound
		}

		variants, err := uow.Variants.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		for _, v := range variants {
			orphaned = append(orphaned, v.Image)
		}

		if err := uow.Variants.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		if err := uow.Maps.DeleteByProduct(ctx, id); err != nil {
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

// ==================== 壳位图 ====================

// UploadVariant 上传位图，同位置已有则替换，旧文件提交后删除
func (s *CaseCatalogService) UploadVariant(ctx context.Context, caseProductID int64, typeName string, image *UploadedFile) (int64, error) {
	p, err := s.uow.Products.GetByID(ctx, caseProductID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, ErrCaseProductNotFound
	}

	old, err := s.uow.Variants.GetByProductAndType(ctx, caseProductID, typeName)
	if err != nil {
		return 0, err
	}

	path, err := s.storage.Upload(ctx, MediaDirCases, image.Data, image.Filename, image.ContentType)
	if err != nil {
		return 0, err
	}

	v := &model.CaseVariant{
		CaseProductID: caseProductID,
		TypeName:      typeName,
		Image:         path,
		IsActive:      true,
	}
	err = s.uow.Transaction(ctx, func(uow *repository.CaseUnitOfWork) error {
		if old != nil {
			if err := uow.Variants.Delete(ctx, old.ID); err != nil {
				return err
			}
		}
		return uow.Variants.Create(ctx, v)
	})
	if err != nil {
		return 0, err
	}

	if old != nil {
		removeFiles(ctx, s.storage, []string{old.Image})
	}
	return v.ID, nil
}

// ListVariants 后台列表，带 id 和显隐状态
func (s *CaseCatalogService) ListVariants(ctx context.Context, caseProductID int64) ([]model.CaseVariant, error) {
	return s.uow.Variants.ListByProduct(ctx, caseProductID)
}

// ListActiveVariants 前台返回 type -> 图片路径 映射
func (s *CaseCatalogService) ListActiveVariants(ctx context.Context, caseProductID int64) (map[string]string, error) {
	variants, err := s.uow.Variants.ListActiveByProduct(ctx, caseProductID)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(variants))
	for _, v := range variants {
		result[v.TypeName] = v.Image
	}
	return result, nil
}

// ToggleVariant 显隐
func (s *CaseCatalogService) ToggleVariant(ctx context.Context, variantID int64, active bool) error {
	v, err := s.uow.Variants.GetByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrCaseVariantNotFound
	}
	v.IsActive = active
	return s.uow.Variants.Update(ctx, v)
}

// DeleteVariant 按位置删除位图
func (s *CaseCatalogService) DeleteVariant(ctx context.Context, caseProductID int64, typeName string) error {
	v, err := s.uow.Variants.GetByProductAndType(ctx, caseProductID, typeName)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrCaseVariantNotFound
	}

	if err := s.uow.Variants.Delete(ctx, v.ID); err != nil {
		return err
	}
	removeFiles(ctx, s.storage, []string{v.Image})
	return nil
}

// ==================== 兼容映射 ====================

// MapModel 建立壳商品到型号的映射，按 (case_product, case_model) 幂等
// 已存在时返回原映射且 alreadyMapped = true，不产生第二行
func (s *CaseCatalogService) MapModel(ctx context.Context, caseProductID int64, req *dto.MapModelReq) (mapID int64, alreadyMapped bool, err error) {
	exists, err := s.uow.Maps.GetByProductAndModel(ctx, caseProductID, req.CaseModelID)
	if err != nil {
		return 0, false, err
	}
	if exists != nil {
		return exists.ID, true, nil
	}

	m := &model.CaseProductModelMap{
		CaseProductID:      caseProductID,
		CaseMainCategoryID: req.CaseMainCategoryID,
		CasePhoneID:        req.CasePhoneID,
		CaseModelID:        req.CaseModelID,
		IsActive:           true,
	}
	if err := s.uow.Maps.Create(ctx, m); err != nil {
		return 0, false, err
	}
	return m.ID, false, nil
}

// ListMappedModels 后台映射列表
func (s *CaseCatalogService) ListMappedModels(ctx context.Context, caseProductID int64) ([]model.CaseProductModelMap, error) {
	return s.uow.Maps.ListByProduct(ctx, caseProductID)
}

// ToggleMap 映射显隐
func (s *CaseCatalogService) ToggleMap(ctx context.Context, mapID int64, active bool) error {
	m, err := s.uow.Maps.GetByID(ctx, mapID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrCaseMapNotFound
	}
	m.IsActive = active
	return s.uow.Maps.Update(ctx, m)
}

// AllowedModels 前台"可用型号"：映射启用，且品牌、机型、型号三级全部
// 存在并启用才出现在结果里；祖先被删的悬挂映射静默跳过，不报错
func (s *CaseCatalogService) AllowedModels(ctx context.Context, caseProductID int64) ([]dto.AllowedModel, error) {
	rows, err := s.uow.Maps.ListActiveByProduct(ctx, caseProductID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AllowedModel, 0, len(rows))
	for _, r := range rows {
		main, err := s.uow.MainCategories.GetByID(ctx, r.CaseMainCategoryID)
		if err != nil {
			return nil, err
		}
		phone, err := s.uow.Phones.GetByID(ctx, r.CasePhoneID)
		if err != nil {
			return nil, err
		}
		mdl, err := s.uow.Models.GetByID(ctx, r.CaseModelID)
		if err != nil {
			return nil, err
		}

		if main == nil || phone == nil || mdl == nil {
			continue
		}
		if !main.IsActive || !phone.IsActive || !mdl.IsActive {
			continue
		}

		result = append(result, dto.AllowedModel{
			MapID:              r.ID,
			CaseMainCategoryID: r.CaseMainCategoryID,
			CasePhoneID:        r.CasePhoneID,
			CaseModelID:        r.CaseModelID,
			MainName:           main.Name,
			PhoneName:          phone.Name,
			ModelName:          mdl.Name,
		})
	}
	return result, nil
}
