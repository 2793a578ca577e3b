package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/aptcare/internal/application/user"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/internal/interface/http/middleware"
	"github.com/xiebiao/aptcare/pkg/response"
)

// AuthHandler 登录、刷新、登出
type AuthHandler struct {
	loginUseCase  *appuser.LoginUseCase
	logoutUseCase *appuser.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(loginUseCase *appuser.LoginUseCase, logoutUseCase *appuser.LogoutUseCase) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUseCase,
		logoutUseCase: logoutUseCase,
	}
}

// OperatorLogin 保洁员登录
// @Summary      保洁员登录
// @Description  按姓名登录（不存在则创建），同时按公寓模板生成当天清单
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.OperatorLoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=user.LoginResponse} "登录成功"
// @Failure      200 {object} response.Response "40402公寓不存在 / 40406没有可用的清单模板"
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) OperatorLogin(c *gin.Context) {
	// 1. 绑定参数
	var req dto.OperatorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. 登录并生成清单
	result, err := h.loginUseCase.OperatorLogin(c.Request.Context(), appuser.OperatorLoginRequest{
		Name:        req.Name,
		ApartmentID: req.ApartmentID,
		Date:        date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ManagerLogin 管理员登录
// @Summary      管理员登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.ManagerLoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=user.LoginResponse} "登录成功"
// @Failure      200 {object} response.Response "40103用户名或密码错误"
// @Router       /api/v1/auth/manager/login [post]
func (h *AuthHandler) ManagerLogin(c *gin.Context) {
	var req dto.ManagerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.loginUseCase.ManagerLogin(c.Request.Context(), appuser.ManagerLoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.RefreshTokenResponse}
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	accessToken, err := h.loginUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RefreshTokenResponse{AccessToken: accessToken})
}

// Logout 登出
// @Summary      登出
// @Description  删除会话并将当前Access Token加入黑名单
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
