package apartment

import (
	"context"
	"time"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
)

// ApartmentInfo 公寓
type ApartmentInfo struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApartmentUseCase 公寓管理用例
type ApartmentUseCase struct {
	repo      apartment.Repository
	txManager *mysql.TxManager
}

// NewApartmentUseCase 创建公寓用例
func NewApartmentUseCase(repo apartment.Repository, txManager *mysql.TxManager) *ApartmentUseCase {
	return &ApartmentUseCase{repo: repo, txManager: txManager}
}

// CreateApartmentRequest 创建公寓请求
type CreateApartmentRequest struct {
	Name        string
	Address     string
	Description string
}

// Create 创建公寓，名称重复返回ErrNameDuplicate
func (uc *ApartmentUseCase) Create(ctx context.Context, req CreateApartmentRequest) (*ApartmentInfo, error) {
	a, err := apartment.NewApartment(req.Name, req.Address, req.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	info := toApartmentInfo(a)
	return &info, nil
}

// Get 查询公寓
func (uc *ApartmentUseCase) Get(ctx context.Context, id uint) (*ApartmentInfo, error) {
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toApartmentInfo(a)
	return &info, nil
}

// List 全部公寓
func (uc *ApartmentUseCase) List(ctx context.Context) ([]ApartmentInfo, error) {
	apartments, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]ApartmentInfo, len(apartments))
	for i, a := range apartments {
		list[i] = toApartmentInfo(a)
	}
	return list, nil
}

// UpdateApartmentRequest 修改公寓请求，nil字段不修改
type UpdateApartmentRequest struct {
	ID          uint
	Name        *string
	Address     *string
	Description *string
}

// Update 修改公寓
func (uc *ApartmentUseCase) Update(ctx context.Context, req UpdateApartmentRequest) (*ApartmentInfo, error) {
	var a *apartment.Apartment
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		a, err = uc.repo.FindByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			if err := a.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Address != nil {
			a.Address = *req.Address
		}
		if req.Description != nil {
			a.Description = *req.Description
		}
		return uc.repo.Update(txCtx, a)
	})
	if err != nil {
		return nil, err
	}
	info := toApartmentInfo(a)
	return &info, nil
}

// Delete 删除公寓（软删除）
func (uc *ApartmentUseCase) Delete(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}

func toApartmentInfo(a *apartment.Apartment) ApartmentInfo {
	return ApartmentInfo{
		ID:          a.ID,
		Name:        a.Name,
		Address:     a.Address,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
