package handler

import (
	"github.com/gin-gonic/gin"

	appapartment "github.com/xiebiao/aptcare/internal/application/apartment"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/pkg/response"
)

// ApartmentHandler 公寓
type ApartmentHandler struct {
	apartments *appapartment.ApartmentUseCase
}

// NewApartmentHandler 创建公寓处理器
func NewApartmentHandler(apartments *appapartment.ApartmentUseCase) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments}
}

// List 公寓列表（保洁员登录前选择公寓，不需要登录）
// @Summary      公寓列表
// @Tags         公寓
// @Produce      json
// @Success      200 {object} response.Response{data=[]apartment.ApartmentInfo}
// @Router       /api/v1/apartments [get]
func (h *ApartmentHandler) List(c *gin.Context) {
	list, err := h.apartments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Get 公寓详情
// @Summary      公寓详情
// @Tags         公寓
// @Produce      json
// @Param        id path int true "公寓ID"
// @Success      200 {object} response.Response{data=apartment.ApartmentInfo}
// @Failure      200 {object} response.Response "40402公寓不存在"
// @Router       /api/v1/apartments/{id} [get]
func (h *ApartmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.apartments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Create 创建公寓
// @Summary      创建公寓
// @Tags         公寓
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateApartmentRequest true "公寓信息"
// @Success      200 {object} response.Response{data=apartment.ApartmentInfo}
// @Failure      200 {object} response.Response "40009公寓名称已存在"
// @Router       /api/v1/apartments [post]
func (h *ApartmentHandler) Create(c *gin.Context) {
	var req dto.CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.apartments.Create(c.Request.Context(), appapartment.CreateApartmentRequest{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Update 修改公寓
// @Summary      修改公寓
// @Tags         公寓
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Param        request body dto.UpdateApartmentRequest true "修改内容"
// @Success      200 {object} response.Response{data=apartment.ApartmentInfo}
// @Router       /api/v1/apartments/{id} [put]
func (h *ApartmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.apartments.Update(c.Request.Context(), appapartment.UpdateApartmentRequest{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Delete 删除公寓（软删除）
// @Summary      删除公寓
// @Tags         公寓
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/apartments/{id} [delete]
func (h *ApartmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.apartments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
