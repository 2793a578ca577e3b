package apartment

import "context"

// Repository 公寓仓储接口
type Repository interface {
	// Create 创建公寓，名称重复返回ErrNameDuplicate
	Create(ctx context.Context, apt *Apartment) error

	// FindByID 如果不存在，返回ErrApartmentNotFound
	FindByID(ctx context.Context, id uint) (*Apartment, error)

	// List 全部公寓（按ID升序）
	List(ctx context.Context) ([]*Apartment, error)

	Update(ctx context.Context, apt *Apartment) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error
}
