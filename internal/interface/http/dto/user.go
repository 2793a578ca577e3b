package dto

// CreateUserRequest 创建用户请求
// 管理员必须提供用户名和密码，保洁员不能设置密码
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Giulia Bianchi"`
	Username string `json:"username" binding:"omitempty,max=50" example:"giulia"`
	Password string `json:"password" binding:"omitempty,min=8,max=72" example:"Password123"`
	Role     string `json:"role" binding:"required,oneof=operator manager" example:"operator"`
}

// ListUsersQuery 用户列表查询
type ListUsersQuery struct {
	Role string `form:"role" binding:"omitempty,oneof=operator manager" example:"operator"`
}
