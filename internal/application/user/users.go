package user

import (
	"context"

	"github.com/xiebiao/aptcare/internal/domain/user"
)

// UserUseCase 用户管理用例（仅管理员）
type UserUseCase struct {
	userService user.Service
	repo        user.Repository
}

// NewUserUseCase 创建用户管理用例
func NewUserUseCase(userService user.Service, repo user.Repository) *UserUseCase {
	return &UserUseCase{userService: userService, repo: repo}
}

// Create 创建用户
// 管理员必须设置用户名和密码，保洁员不能设置
func (uc *UserUseCase) Create(ctx context.Context, req CreateUserRequest) (*UserInfo, error) {
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	u, err := uc.userService.CreateUser(ctx, req.Name, req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(u)
	return &info, nil
}

// Get 查询用户
func (uc *UserUseCase) Get(ctx context.Context, id uint) (*UserInfo, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(u)
	return &info, nil
}

// List 查询用户，role为空时返回全部
func (uc *UserUseCase) List(ctx context.Context, role string) ([]UserInfo, error) {
	var filter *user.Role
	if role != "" {
		r, err := user.ParseRole(role)
		if err != nil {
			return nil, err
		}
		filter = &r
	}

	users, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	list := make([]UserInfo, len(users))
	for i, u := range users {
		list[i] = ToUserInfo(u)
	}
	return list, nil
}
