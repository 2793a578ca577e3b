package inventory

import (
	"context"
	"strings"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// CategoryUseCase 物品分类用例
type CategoryUseCase struct {
	repo inventory.CategoryRepository
}

// NewCategoryUseCase 创建分类用例
func NewCategoryUseCase(repo inventory.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name         string
	Description  string
	IsConsumable bool
}

// Create 创建分类，名称重复返回ErrCategoryDuplicate
func (uc *CategoryUseCase) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, inventory.ErrInvalidName
	}

	c := &inventory.Category{
		Name:         name,
		Description:  req.Description,
		IsConsumable: req.IsConsumable,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	info := toCategoryInfo(c)
	return &info, nil
}

// List 全部分类
func (uc *CategoryUseCase) List(ctx context.Context) ([]CategoryInfo, error) {
	categories, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]CategoryInfo, len(categories))
	for i, c := range categories {
		list[i] = toCategoryInfo(c)
	}
	return list, nil
}
