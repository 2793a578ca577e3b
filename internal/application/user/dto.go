package user

import (
	"time"

	"github.com/xiebiao/aptcare/internal/domain/user"
)

// =========================================
// 应用层DTO
// =========================================

// OperatorLoginRequest 保洁员登录请求
type OperatorLoginRequest struct {
	Name        string
	ApartmentID uint
	Date        *time.Time // 为空时为当天
}

// ManagerLoginRequest 管理员登录请求
type ManagerLoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	ChecklistID  uint     `json:"checklist_id,omitempty"` // 保洁员登录生成的清单
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息（不包含密码）
type UserInfo struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string
	Username string
	Password string
	Role     string
}

// ToUserInfo 领域实体 → DTO
func ToUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
