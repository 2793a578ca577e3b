package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/aptcare/internal/application/user"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/pkg/response"
)

// UserHandler 用户管理（仅管理员）
type UserHandler struct {
	users *appuser.UserUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(users *appuser.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// List 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        role query string false "角色" Enums(operator, manager)
// @Success      200 {object} response.Response{data=[]user.UserInfo}
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.users.List(c.Request.Context(), query.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Get 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=user.UserInfo}
// @Failure      200 {object} response.Response "40401用户不存在"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Create 创建用户
// @Summary      创建用户
// @Description  管理员需要用户名和密码（bcrypt存储），保洁员只需要姓名
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      200 {object} response.Response{data=user.UserInfo}
// @Failure      200 {object} response.Response "40009用户名已存在"
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.users.Create(c.Request.Context(), appuser.CreateUserRequest{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
