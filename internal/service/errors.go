package service

import (
	"errors"
	"fmt"
)

// ==================== 业务错误 ====================

// ErrNotFound 所有"按 ID 找不到"类错误的基错误，controller 统一映射为 404
var ErrNotFound = errors.New("记录不存在")

var (
	ErrMainCategoryNotFound     = fmt.Errorf("一级分类不存在: %w", ErrNotFound)
	ErrSubCategoryNotFound      = fmt.Errorf("二级分类不存在: %w", ErrNotFound)
	ErrProductNotFound          = fmt.Errorf("商品不存在: %w", ErrNotFound)
	ErrCaseMainCategoryNotFound = fmt.Errorf("壳品牌不存在: %w", ErrNotFound)
	ErrCasePhoneNotFound        = fmt.Errorf("机型不存在: %w", ErrNotFound)
	ErrCaseModelNotFound        = fmt.Errorf("型号不存在: %w", ErrNotFound)
	ErrCaseProductNotFound      = fmt.Errorf("壳商品不存在: %w", ErrNotFound)
	ErrCaseVariantNotFound      = fmt.Errorf("壳位图不存在: %w", ErrNotFound)
	ErrCaseMapNotFound          = fmt.Errorf("映射不存在: %w", ErrNotFound)
)

var (
	// ErrInvalidCredentials 用户名/邮箱或密码错误
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrEmailTaken 注册邮箱已被占用
	ErrEmailTaken = errors.New("邮箱已注册")
	// ErrAdminExists 管理员用户名已存在
	ErrAdminExists = errors.New("管理员已存在")
)
