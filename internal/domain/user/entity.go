package user

import (
	"strings"
	"time"
)

// Role 用户角色
type Role string

const (
	RoleOperator Role = "operator" // 保洁员，按姓名登录
	RoleManager  Role = "manager"  // 管理员，用户名+密码登录
)

// ParseRole 解析角色，未知值返回错误
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleOperator, RoleManager:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// User 用户实体（聚合根）
// 设计说明：
// 1. 保洁员只有姓名，没有用户名和密码
// 2. 管理员密码以bcrypt哈希存储
// 3. 领域实体不依赖GORM tag
type User struct {
	ID           uint
	Name         string
	Username     string // 仅管理员
	PasswordHash string // 仅管理员
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOperator 创建保洁员
func NewOperator(name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &User{
		Name:      name,
		Role:      RoleOperator,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewManager 创建管理员
// hashedPassword必须是bcrypt加密后的密码
func NewManager(name, username, hashedPassword string) (*User, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if name == "" {
		return nil, ErrInvalidName
	}
	if username == "" {
		return nil, ErrInvalidUsername
	}
	now := time.Now()
	return &User{
		Name:         name,
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         RoleManager,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsManager 是否管理员
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
