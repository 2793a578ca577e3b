package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/domain/report"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/export"
	"github.com/xiebiao/aptcare/pkg/metrics"
	"github.com/xiebiao/aptcare/pkg/tracing"
)

const tracerName = "report"

// ReportUseCase 报表用例
// 所有数据在查询时计算，不缓存
type ReportUseCase struct {
	apartmentRepo apartment.Repository
	itemRepo      inventory.ItemRepository
	alertRepo     inventory.AlertRepository
	categoryRepo  inventory.CategoryRepository
	checklistRepo checklist.Repository
	userRepo      user.Repository
	now           func() time.Time
}

// NewReportUseCase 创建报表用例
func NewReportUseCase(
	apartmentRepo apartment.Repository,
	itemRepo inventory.ItemRepository,
	alertRepo inventory.AlertRepository,
	categoryRepo inventory.CategoryRepository,
	checklistRepo checklist.Repository,
	userRepo user.Repository,
) *ReportUseCase {
	return &ReportUseCase{
		apartmentRepo: apartmentRepo,
		itemRepo:      itemRepo,
		alertRepo:     alertRepo,
		categoryRepo:  categoryRepo,
		checklistRepo: checklistRepo,
		userRepo:      userRepo,
		now:           time.Now,
	}
}

// Dashboard 管理员看板
// 1. 每个公寓的缺货、库存不足物品
// 2. 最近20条未处理告警
// 3. 最近7天的清单（最多20条）
// 4. 全部需要补货的物品，按数量升序、ID升序
func (uc *ReportUseCase) Dashboard(ctx context.Context) (_ *Dashboard, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Dashboard")
	defer func() { tracing.EndSpan(span, err) }()

	apartments, err := uc.apartmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.List(ctx, inventory.ListParams{})
	if err != nil {
		return nil, err
	}

	byApartment := make(map[uint][]*inventory.Item)
	for _, item := range items {
		byApartment[item.ApartmentID] = append(byApartment[item.ApartmentID], item)
	}

	summaries := make([]ApartmentSummary, len(apartments))
	for i, apt := range apartments {
		p := report.PartitionItems(byApartment[apt.ID])
		summaries[i] = ApartmentSummary{
			Apartment:     toApartmentInfo(apt),
			LowStockItems: appinventory.ToItemInfos(p.Low),
			MissingItems:  appinventory.ToItemInfos(p.Missing),
			TotalItems:    p.Total(),
		}
	}

	open := false
	alerts, err := uc.alertRepo.List(ctx, inventory.AlertListParams{
		Resolved: &open,
		Limit:    report.DashboardAlertLimit,
	})
	if err != nil {
		return nil, err
	}

	since := uc.now().AddDate(0, 0, -report.DashboardChecklistDays)
	checklists, _, err := uc.checklistRepo.List(ctx, checklist.ListParams{
		From:     &since,
		Page:     1,
		PageSize: report.DashboardChecklistLimit,
	})
	if err != nil {
		return nil, err
	}
	recent := make([]appchecklist.ChecklistInfo, len(checklists))
	for i, c := range checklists {
		recent[i] = appchecklist.ToChecklistInfo(c)
	}

	restock, err := uc.itemRepo.ListToRestock(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Apartments:       summaries,
		ActiveAlerts:     appinventory.ToAlertInfos(alerts),
		RecentChecklists: recent,
		ItemsToRestock:   appinventory.ToItemInfos(restock),
	}, nil
}

// ApartmentInventory 公寓库存报表
func (uc *ReportUseCase) ApartmentInventory(ctx context.Context, apartmentID uint) (*ApartmentInventoryReport, error) {
	apt, err := uc.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.List(ctx, inventory.ListParams{ApartmentID: &apartmentID})
	if err != nil {
		return nil, err
	}

	p := report.PartitionItems(items)
	return &ApartmentInventoryReport{
		Apartment:     toApartmentInfo(apt),
		TotalItems:    p.Total(),
		LowStockCount: len(p.Low),
		MissingCount:  len(p.Missing),
		OKStockCount:  len(p.OK),
		LowStockItems: appinventory.ToItemInfos(p.Low),
		MissingItems:  appinventory.ToItemInfos(p.Missing),
		AllItems:      appinventory.ToItemInfos(items),
	}, nil
}

// ApartmentStats 公寓统计
// 完成率在没有清单时为0
func (uc *ReportUseCase) ApartmentStats(ctx context.Context, apartmentID uint) (*ApartmentStats, error) {
	apt, err := uc.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	total, err := uc.checklistRepo.Count(ctx, apartmentID, nil)
	if err != nil {
		return nil, err
	}
	done := true
	completed, err := uc.checklistRepo.Count(ctx, apartmentID, &done)
	if err != nil {
		return nil, err
	}

	since := uc.now().AddDate(0, 0, -report.StatsRecentDays)
	_, recent, err := uc.checklistRepo.List(ctx, checklist.ListParams{
		ApartmentID: &apartmentID,
		From:        &since,
		Page:        1,
		PageSize:    1,
	})
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.List(ctx, inventory.ListParams{ApartmentID: &apartmentID})
	if err != nil {
		return nil, err
	}
	low := 0
	for _, item := range items {
		if item.IsLowStock() {
			low++
		}
	}

	return &ApartmentStats{
		Apartment:           toApartmentInfo(apt),
		TotalChecklists:     total,
		CompletedChecklists: completed,
		CompletionRate:      report.CompletionRate(completed, total),
		RecentChecklists30d: recent,
		TotalInventoryItems: len(items),
		LowStockItems:       low,
	}, nil
}

// ExportInventoryCSV 导出库存CSV，apartmentID为nil时导出全部
func (uc *ReportUseCase) ExportInventoryCSV(ctx context.Context, apartmentID *uint) (_ *ExportFile, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ExportInventoryCSV")
	defer func() { tracing.EndSpan(span, err) }()

	items, err := uc.itemRepo.List(ctx, inventory.ListParams{ApartmentID: apartmentID})
	if err != nil {
		return nil, err
	}
	apartments, err := uc.apartmentNames(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Header: []string{"ID", "Apartment", "Item", "Category", "Quantity", "Min", "Unit", "Status", "Last Updated"},
		Rows:   make([][]string, len(items)),
	}
	for i, item := range items {
		table.Rows[i] = []string{
			strconv.FormatUint(uint64(item.ID), 10),
			apartments[item.ApartmentID],
			item.Name,
			categories[item.CategoryID],
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinQuantity),
			item.Unit,
			string(report.StatusOf(item)),
			item.LastUpdated.Format("2006-01-02 15:04:05"),
		}
	}

	data, err := export.CSV(table)
	if err != nil {
		return nil, err
	}
	metrics.RecordExport("inventory", "csv")
	return &ExportFile{
		Filename:    uc.filename("inventory_export", "csv"),
		ContentType: export.ContentTypeCSV,
		Data:        data,
	}, nil
}

// ExportInventoryPDF 导出库存PDF
func (uc *ReportUseCase) ExportInventoryPDF(ctx context.Context, apartmentID *uint) (_ *ExportFile, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ExportInventoryPDF")
	defer func() { tracing.EndSpan(span, err) }()

	table := export.Table{
		Title:  "Inventory Report",
		Header: []string{"Item", "Quantity", "Min", "Unit", "Status"},
	}
	if apartmentID != nil {
		apt, err := uc.apartmentRepo.FindByID(ctx, *apartmentID)
		if err != nil {
			return nil, err
		}
		table.Subtitle = "Apartment: " + apt.Name
	}

	items, err := uc.itemRepo.List(ctx, inventory.ListParams{ApartmentID: apartmentID})
	if err != nil {
		return nil, err
	}
	table.Rows = make([][]string, len(items))
	for i, item := range items {
		table.Rows[i] = []string{
			item.Name,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinQuantity),
			item.Unit,
			string(report.StatusOf(item)),
		}
	}

	data, err := export.PDF(table)
	if err != nil {
		return nil, err
	}
	metrics.RecordExport("inventory", "pdf")
	return &ExportFile{
		Filename:    uc.filename("inventory_report", "pdf"),
		ContentType: export.ContentTypePDF,
		Data:        data,
	}, nil
}

// ExportChecklistsRequest 清单导出条件
type ExportChecklistsRequest struct {
	ApartmentID *uint
	From        *time.Time
	To          *time.Time
}

// ExportChecklistsCSV 导出清单CSV（日期倒序）
func (uc *ReportUseCase) ExportChecklistsCSV(ctx context.Context, req ExportChecklistsRequest) (_ *ExportFile, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ExportChecklistsCSV")
	defer func() { tracing.EndSpan(span, err) }()

	checklists, _, err := uc.checklistRepo.List(ctx, checklist.ListParams{
		ApartmentID: req.ApartmentID,
		From:        req.From,
		To:          req.To,
	})
	if err != nil {
		return nil, err
	}
	apartments, err := uc.apartmentNames(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userNames(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Header: []string{"ID", "Date", "Apartment", "Operator", "Completed", "Notes"},
		Rows:   make([][]string, len(checklists)),
	}
	for i, c := range checklists {
		completed := "no"
		if c.Completed {
			completed = "yes"
		}
		table.Rows[i] = []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Date.Format(appchecklist.DateLayout),
			apartments[c.ApartmentID],
			users[c.UserID],
			completed,
			c.Notes,
		}
	}

	data, err := export.CSV(table)
	if err != nil {
		return nil, err
	}
	metrics.RecordExport("checklists", "csv")
	return &ExportFile{
		Filename:    uc.filename("checklists_export", "csv"),
		ContentType: export.ContentTypeCSV,
		Data:        data,
	}, nil
}

func (uc *ReportUseCase) filename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, uc.now().Format("20060102"), ext)
}

func (uc *ReportUseCase) apartmentNames(ctx context.Context) (map[uint]string, error) {
	apartments, err := uc.apartmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(apartments))
	for _, a := range apartments {
		names[a.ID] = a.Name
	}
	return names, nil
}

func (uc *ReportUseCase) categoryNames(ctx context.Context) (map[uint]string, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (uc *ReportUseCase) userNames(ctx context.Context) (map[uint]string, error) {
	users, err := uc.userRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func toApartmentInfo(a *apartment.Apartment) ApartmentInfo {
	return ApartmentInfo{ID: a.ID, Name: a.Name, Address: a.Address}
}
