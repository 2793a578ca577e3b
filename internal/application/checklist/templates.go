package checklist

import (
	"context"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
)

// TemplateUseCase 清单模板用例
type TemplateUseCase struct {
	repo          checklist.TemplateRepository
	apartmentRepo apartment.Repository
}

// NewTemplateUseCase 创建模板用例
func NewTemplateUseCase(repo checklist.TemplateRepository, apartmentRepo apartment.Repository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, apartmentRepo: apartmentRepo}
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name        string
	Description string
	ApartmentID *uint // 为空表示通用模板
	Tasks       []checklist.TaskSpec
}

// Create 创建模板，任务顺序即order_index
func (uc *TemplateUseCase) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateInfo, error) {
	tpl, err := checklist.NewTemplate(req.Name, req.Description, req.ApartmentID, req.Tasks)
	if err != nil {
		return nil, err
	}
	if req.ApartmentID != nil {
		if _, err := uc.apartmentRepo.FindByID(ctx, *req.ApartmentID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}

	info := ToTemplateInfo(tpl)
	return &info, nil
}

// Get 查询模板及任务
func (uc *TemplateUseCase) Get(ctx context.Context, id uint) (*TemplateInfo, error) {
	tpl, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToTemplateInfo(tpl)
	return &info, nil
}

// List 查询模板，指定公寓时包含通用模板
func (uc *TemplateUseCase) List(ctx context.Context, apartmentID *uint) ([]TemplateInfo, error) {
	templates, err := uc.repo.List(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	list := make([]TemplateInfo, len(templates))
	for i, tpl := range templates {
		list[i] = ToTemplateInfo(tpl)
	}
	return list, nil
}
