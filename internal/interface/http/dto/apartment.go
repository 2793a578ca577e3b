package dto

// CreateApartmentRequest 创建公寓请求
type CreateApartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Casa Verde"`
	Address     string `json:"address" binding:"max=255" example:"Via Roma 12, Milano"`
	Description string `json:"description" binding:"max=2000" example:"两室一厅，三楼"`
}

// UpdateApartmentRequest 修改公寓请求，未传的字段不修改
type UpdateApartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100" example:"Casa Verde"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}
