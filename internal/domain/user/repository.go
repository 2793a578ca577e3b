package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
type Repository interface {
	// Create 创建用户
	// 注意：如果用户名已存在，应返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找管理员
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindOperatorByName 根据姓名查找保洁员
	FindOperatorByName(ctx context.Context, name string) (*User, error)

	// List 查询用户，role为nil时返回全部
	List(ctx context.Context, role *Role) ([]*User, error)
}
