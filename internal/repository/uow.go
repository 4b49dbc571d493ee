package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== CatalogUnitOfWork 目录工作单元（事务） ====================

// CatalogUnitOfWork 级联删除需要跨多张表，行删除必须同进同退
type CatalogUnitOfWork struct {
	db             *gorm.DB
	MainCategories MainCategoryRepository
	SubCategories  SubCategoryRepository
	Products       ProductRepository
	Images         ProductImageRepository
}

// NewCatalogUnitOfWork 创建目录工作单元
func NewCatalogUnitOfWork(db *gorm.DB) *CatalogUnitOfWork {
	return &CatalogUnitOfWork{
		db:             db,
		MainCategories: NewMainCategoryRepository(db),
		SubCategories:  NewSubCategoryRepository(db),
		Products:       NewProductRepository(db),
		Images:         NewProductImageRepository(db),
	}
}

// Transaction 执行事务
func (u *CatalogUnitOfWork) Transaction(ctx context.Context, fn func(uow *CatalogUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CatalogUnitOfWork{
			db:             tx,
			MainCategories: NewMainCategoryRepository(tx),
			SubCategories:  NewSubCategoryRepository(tx),
			Products:       NewProductRepository(tx),
			Images:         NewProductImageRepository(tx),
		}
		return fn(txUow)
	})
}

// ==================== CaseUnitOfWork 壳目录工作单元（事务） ====================

// CaseUnitOfWork 壳目录的级联删除工作单元
type CaseUnitOfWork struct {
	db             *gorm.DB
	MainCategories CaseMainCategoryRepository
	Phones         CasePhoneRepository
	Models         CaseModelRepository
	Products       CaseProductRepository
	Variants       CaseVariantRepository
	Maps           CaseMapRepository
}

// NewCaseUnitOfWork 创建壳目录工作单元
func NewCaseUnitOfWork(db *gorm.DB) *CaseUnitOfWork {
	return &CaseUnitOfWork{
		db:             db,
		MainCategories: NewCaseMainCategoryRepository(db),
		Phones:         NewCasePhoneRepository(db),
		Models:         NewCaseModelRepository(db),
		Products:       NewCaseProductRepository(db),
		Variants:       NewCaseVariantRepository(db),
		Maps:           NewCaseMapRepository(db),
	}
}

// Transaction 执行事务
func (u *CaseUnitOfWork) Transaction(ctx context.Context, fn func(uow *CaseUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CaseUnitOfWork{
			db:             tx,
			MainCategories: NewCaseMainCategoryRepository(tx),
			Phones:         NewCasePhoneRepository(tx),
			Models:         NewCaseModelRepository(tx),
			Products:       NewCaseProductRepository(tx),
			Variants:       NewCaseVariantRepository(tx),
			Maps:           NewCaseMapRepository(tx),
		}
		return fn(txUow)
	})
}
