package checklist

import (
	"context"
	"time"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/pkg/metrics"
)

// 分页默认值
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// 清单来源（指标标签）
const (
	SourceLogin  = "login"
	SourceManual = "manual"
)

// ChecklistUseCase 保洁清单用例
type ChecklistUseCase struct {
	repo          checklist.Repository
	templateRepo  checklist.TemplateRepository
	apartmentRepo apartment.Repository
	userRepo      user.Repository
	txManager     *mysql.TxManager
}

// NewChecklistUseCase 创建清单用例
func NewChecklistUseCase(
	repo checklist.Repository,
	templateRepo checklist.TemplateRepository,
	apartmentRepo apartment.Repository,
	userRepo user.Repository,
	txManager *mysql.TxManager,
) *ChecklistUseCase {
	return &ChecklistUseCase{
		repo:          repo,
		templateRepo:  templateRepo,
		apartmentRepo: apartmentRepo,
		userRepo:      userRepo,
		txManager:     txManager,
	}
}

// CreateChecklistRequest 创建清单请求
type CreateChecklistRequest struct {
	ApartmentID uint
	UserID      uint
	TemplateID  *uint      // 为空时使用公寓模板，没有则使用通用模板
	Date        *time.Time // 为空时为当天
	Notes       string
}

// Create 管理员手动创建清单
func (uc *ChecklistUseCase) Create(ctx context.Context, req CreateChecklistRequest) (*ChecklistInfo, error) {
	return uc.create(ctx, req, SourceManual)
}

// StartShift 保洁员登录时生成清单
// 在调用方事务内执行时复用外层事务
func (uc *ChecklistUseCase) StartShift(ctx context.Context, apartmentID, userID uint, date *time.Time) (*ChecklistInfo, error) {
	return uc.create(ctx, CreateChecklistRequest{
		ApartmentID: apartmentID,
		UserID:      userID,
		Date:        date,
	}, SourceLogin)
}

func (uc *ChecklistUseCase) create(ctx context.Context, req CreateChecklistRequest, source string) (*ChecklistInfo, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	date = startOfDay(date)

	var c *checklist.Checklist
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 校验公寓和保洁员
		if _, err := uc.apartmentRepo.FindByID(txCtx, req.ApartmentID); err != nil {
			return err
		}
		if _, err := uc.userRepo.FindByID(txCtx, req.UserID); err != nil {
			return err
		}

		// 2. 选择模板
		var (
			tpl *checklist.Template
			err error
		)
		if req.TemplateID != nil {
			tpl, err = uc.templateRepo.FindByID(txCtx, *req.TemplateID)
		} else {
			tpl, err = uc.templateRepo.FindForApartment(txCtx, req.ApartmentID)
		}
		if err != nil {
			return err
		}

		// 3. 按模板生成任务
		c = checklist.FromTemplate(tpl, req.ApartmentID, req.UserID, date)
		c.Notes = req.Notes
		return uc.repo.Create(txCtx, c)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordChecklistCreated(source)

	info := ToChecklistInfo(c)
	return &info, nil
}

// ListChecklistsRequest 清单列表请求
type ListChecklistsRequest struct {
	ApartmentID *uint
	UserID      *uint
	Completed   *bool
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// ListChecklistsResponse 清单分页结果
type ListChecklistsResponse struct {
	Checklists []ChecklistInfo `json:"checklists"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// List 分页查询清单（日期倒序）
func (uc *ChecklistUseCase) List(ctx context.Context, req ListChecklistsRequest) (*ListChecklistsResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	items, total, err := uc.repo.List(ctx, checklist.ListParams{
		ApartmentID: req.ApartmentID,
		UserID:      req.UserID,
		Completed:   req.Completed,
		From:        req.From,
		To:          req.To,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]ChecklistInfo, len(items))
	for i, c := range items {
		list[i] = ToChecklistInfo(c)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return &ListChecklistsResponse{
		Checklists: list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 查询清单及任务
func (uc *ChecklistUseCase) Get(ctx context.Context, id uint) (*ChecklistInfo, error) {
	c, err := uc.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	info := ToChecklistInfo(c)
	return &info, nil
}

// UpdateChecklistRequest 修改清单请求
type UpdateChecklistRequest struct {
	ID        uint
	Completed *bool
	Notes     *string
}

// Update 修改完成状态和备注
// 第一次完成时写入completed_at，之后不再改变
func (uc *ChecklistUseCase) Update(ctx context.Context, req UpdateChecklistRequest) (*ChecklistInfo, error) {
	var c *checklist.Checklist
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		c, err = uc.repo.FindByID(txCtx, req.ID, true)
		if err != nil {
			return err
		}
		if req.Completed != nil {
			c.SetCompleted(*req.Completed, time.Now())
		}
		if req.Notes != nil {
			c.Notes = *req.Notes
		}
		return uc.repo.Update(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	info := ToChecklistInfo(c)
	return &info, nil
}

// startOfDay 截断到当天零点
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
