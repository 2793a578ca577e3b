package handler

import (
	"github.com/gin-gonic/gin"

	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/pkg/response"
)

// ChecklistHandler 保洁清单
type ChecklistHandler struct {
	checklists *appchecklist.ChecklistUseCase
}

// NewChecklistHandler 创建清单处理器
func NewChecklistHandler(checklists *appchecklist.ChecklistUseCase) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists}
}

// List 清单列表（日期倒序，分页）
// @Summary      清单列表
// @Tags         清单
// @Produce      json
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Param        user_id query int false "保洁员ID"
// @Param        completed query bool false "是否完成"
// @Param        start_date query string false "开始日期 YYYY-MM-DD"
// @Param        end_date query string false "结束日期 YYYY-MM-DD"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=checklist.ListChecklistsResponse}
// @Router       /api/v1/checklists [get]
func (h *ChecklistHandler) List(c *gin.Context) {
	var query dto.ListChecklistsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}
	from, err := parseDate(query.StartDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDate(query.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.checklists.List(c.Request.Context(), appchecklist.ListChecklistsRequest{
		ApartmentID: query.ApartmentID,
		UserID:      query.UserID,
		Completed:   query.Completed,
		From:        from,
		To:          to,
		Page:        query.Page,
		PageSize:    query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.Checklists, result.Total, result.Page, result.PageSize)
}

// Get 清单详情（含任务）
// @Summary      清单详情
// @Tags         清单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "清单ID"
// @Success      200 {object} response.Response{data=checklist.ChecklistInfo}
// @Failure      200 {object} response.Response "40405清单不存在"
// @Router       /api/v1/checklists/{id} [get]
func (h *ChecklistHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.checklists.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Create 手动创建清单
// @Summary      创建清单
// @Description  按指定模板（或公寓模板、通用模板）生成任务
// @Tags         清单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateChecklistRequest true "清单信息"
// @Success      200 {object} response.Response{data=checklist.ChecklistInfo}
// @Router       /api/v1/checklists [post]
func (h *ChecklistHandler) Create(c *gin.Context) {
	var req dto.CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.checklists.Create(c.Request.Context(), appchecklist.CreateChecklistRequest{
		ApartmentID: req.ApartmentID,
		UserID:      req.UserID,
		TemplateID:  req.TemplateID,
		Date:        date,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Update 修改完成状态和备注
// @Summary      修改清单
// @Description  第一次标记完成时记录completed_at，之后不再改变
// @Tags         清单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "清单ID"
// @Param        request body dto.UpdateChecklistRequest true "修改内容"
// @Success      200 {object} response.Response{data=checklist.ChecklistInfo}
// @Router       /api/v1/checklists/{id} [put]
func (h *ChecklistHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.checklists.Update(c.Request.Context(), appchecklist.UpdateChecklistRequest{
		ID:        id,
		Completed: req.Completed,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
