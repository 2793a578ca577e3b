package checklist

import "context"

// Repository 清单仓储接口
type Repository interface {
	// Create 创建清单及其任务结果
	Create(ctx context.Context, c *Checklist) error

	// FindByID 如果不存在，返回ErrChecklistNotFound
	// withTasks为true时加载任务结果
	FindByID(ctx context.Context, id uint, withTasks bool) (*Checklist, error)

	// List 按日期倒序查询清单（不加载任务）
	List(ctx context.Context, params ListParams) ([]*Checklist, int64, error)

	// Update 更新清单状态与备注
	Update(ctx context.Context, c *Checklist) error

	// Count 统计公寓清单数，completed为nil时统计全部
	Count(ctx context.Context, apartmentID uint, completed *bool) (int64, error)

	// ListTasks 按OrderIndex查询清单任务
	ListTasks(ctx context.Context, checklistID uint) ([]TaskResponse, error)

	// FindTask 如果不存在，返回ErrTaskNotFound
	FindTask(ctx context.Context, id uint) (*TaskResponse, error)

	// LockTask 加行锁查询任务结果，必须在事务中调用
	LockTask(ctx context.Context, id uint) (*TaskResponse, error)

	// UpdateTask 更新任务结果
	UpdateTask(ctx context.Context, task *TaskResponse) error
}

// TemplateRepository 清单模板仓储接口
type TemplateRepository interface {
	// Create 创建模板及其任务
	Create(ctx context.Context, t *Template) error

	// FindByID 如果不存在，返回ErrTemplateNotFound
	FindByID(ctx context.Context, id uint) (*Template, error)

	// FindForApartment 公寓专属的启用模板，没有则返回通用模板
	FindForApartment(ctx context.Context, apartmentID uint) (*Template, error)

	// List 查询模板，apartmentID为nil时返回全部
	List(ctx context.Context, apartmentID *uint) ([]*Template, error)
}
