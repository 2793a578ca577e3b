package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/pkg/response"
)

// AlertHandler 告警
type AlertHandler struct {
	alerts *appinventory.AlertUseCase
}

// NewAlertHandler 创建告警处理器
func NewAlertHandler(alerts *appinventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List 告警列表（按创建时间倒序）
// @Summary      告警列表
// @Tags         告警
// @Produce      json
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Param        resolved query bool false "是否已处理"
// @Success      200 {object} response.Response{data=[]inventory.AlertInfo}
// @Router       /api/v1/inventory/alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	var query dto.ListAlertsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.alerts.List(c.Request.Context(), inventory.AlertListParams{
		ApartmentID: query.ApartmentID,
		Resolved:    query.Resolved,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Create 手动上报告警
// @Summary      创建告警
// @Description  alert_type: low_stock | missing_item | checklist_issue，severity: low | medium | high
// @Tags         告警
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAlertRequest true "告警信息"
// @Success      200 {object} response.Response{data=inventory.AlertInfo}
// @Failure      200 {object} response.Response "40011该物品已存在同类型的未处理告警"
// @Router       /api/v1/inventory/alerts [post]
func (h *AlertHandler) Create(c *gin.Context) {
	var req dto.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.alerts.Create(c.Request.Context(), appinventory.CreateAlertRequest{
		ApartmentID: req.ApartmentID,
		ItemID:      req.ItemID,
		Kind:        req.AlertType,
		Severity:    req.Severity,
		Message:     req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Resolve 处理告警
// @Summary      处理告警
// @Tags         告警
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "告警ID"
// @Success      200 {object} response.Response{data=inventory.AlertInfo}
// @Failure      200 {object} response.Response "40404告警不存在 / 40012告警已处理"
// @Router       /api/v1/inventory/alerts/{id}/resolve [put]
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.alerts.Resolve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
