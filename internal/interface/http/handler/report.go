package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/xiebiao/aptcare/internal/application/report"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/pkg/response"
)

// ReportHandler 管理员报表与导出
type ReportHandler struct {
	reports *appreport.ReportUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(reports *appreport.ReportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard 管理员看板
// @Summary      看板
// @Description  各公寓缺货/不足数量、最近20条未处理告警、待补货物品（数量升序，ID升序）、最近7天清单
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=report.Dashboard}
// @Router       /api/v1/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	result, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ApartmentInventory 公寓库存报表
// @Summary      公寓库存报表
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Success      200 {object} response.Response{data=report.ApartmentInventoryReport}
// @Router       /api/v1/reports/apartments/{id}/inventory [get]
func (h *ReportHandler) ApartmentInventory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reports.ApartmentInventory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ApartmentStats 公寓统计
// @Summary      公寓统计
// @Description  清单完成率 = 已完成/总数*100，没有清单时为0
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Success      200 {object} response.Response{data=report.ApartmentStats}
// @Router       /api/v1/reports/apartments/{id}/stats [get]
func (h *ReportHandler) ApartmentStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reports.ApartmentStats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ExportInventoryCSV 导出库存CSV
// @Summary      导出库存CSV
// @Tags         报表
// @Produce      text/csv
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Success      200 {file} file
// @Router       /api/v1/reports/export/inventory/csv [get]
func (h *ReportHandler) ExportInventoryCSV(c *gin.Context) {
	var query dto.ExportInventoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.reports.ExportInventoryCSV(c.Request.Context(), query.ApartmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.ContentType, file.Filename, file.Data)
}

// ExportInventoryPDF 导出库存PDF
// @Summary      导出库存PDF
// @Tags         报表
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Success      200 {file} file
// @Router       /api/v1/reports/export/inventory/pdf [get]
func (h *ReportHandler) ExportInventoryPDF(c *gin.Context) {
	var query dto.ExportInventoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.reports.ExportInventoryPDF(c.Request.Context(), query.ApartmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.ContentType, file.Filename, file.Data)
}

// ExportChecklistsCSV 导出清单CSV
// @Summary      导出清单CSV
// @Tags         报表
// @Produce      text/csv
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Param        start_date query string false "开始日期 YYYY-MM-DD"
// @Param        end_date query string false "结束日期 YYYY-MM-DD"
// @Success      200 {file} file
// @Router       /api/v1/reports/export/checklists/csv [get]
func (h *ReportHandler) ExportChecklistsCSV(c *gin.Context) {
	var query dto.ExportChecklistsQuery
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

	file, err := h.reports.ExportChecklistsCSV(c.Request.Context(), appreport.ExportChecklistsRequest{
		ApartmentID: query.ApartmentID,
		From:        from,
		To:          to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.ContentType, file.Filename, file.Data)
}
