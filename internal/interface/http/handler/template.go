package handler

import (
	"github.com/gin-gonic/gin"

	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/pkg/response"
)

// TemplateHandler 清单模板
type TemplateHandler struct {
	templates *appchecklist.TemplateUseCase
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(templates *appchecklist.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List 模板列表
// @Summary      模板列表
// @Tags         清单模板
// @Produce      json
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Success      200 {object} response.Response{data=[]checklist.TemplateInfo}
// @Router       /api/v1/checklists/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	var query dto.ListTemplatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.templates.List(c.Request.Context(), query.ApartmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Get 模板详情
// @Summary      模板详情
// @Tags         清单模板
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "模板ID"
// @Success      200 {object} response.Response{data=checklist.TemplateInfo}
// @Router       /api/v1/checklists/templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Create 创建模板
// @Summary      创建模板
// @Description  tasks数组顺序即任务的order_index
// @Tags         清单模板
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTemplateRequest true "模板信息"
// @Success      200 {object} response.Response{data=checklist.TemplateInfo}
// @Router       /api/v1/checklists/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	specs := make([]checklist.TaskSpec, len(req.Tasks))
	for i, t := range req.Tasks {
		specs[i] = checklist.TaskSpec{
			Title:       t.Title,
			Description: t.Description,
			TaskType:    t.TaskType,
			Required:    t.Required,
		}
	}

	info, err := h.templates.Create(c.Request.Context(), appchecklist.CreateTemplateRequest{
		Name:        req.Name,
		Description: req.Description,
		ApartmentID: req.ApartmentID,
		Tasks:       specs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
