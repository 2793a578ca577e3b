package dto

// OperatorLoginRequest 保洁员登录请求
// 没有该姓名的保洁员时自动创建，并按公寓模板生成当天清单
type OperatorLoginRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Maria Rossi"`
	ApartmentID uint   `json:"apartment_id" binding:"required,min=1" example:"1"`
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-15"` // 为空时为当天
}

// ManagerLoginRequest 管理员登录请求
type ManagerLoginRequest struct {
	Username string `json:"username" binding:"required,max=50" example:"manager"`
	Password string `json:"password" binding:"required,max=72" example:"Manager123"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新Token响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
