package checklist

import (
	"sort"
	"time"
)

// Checklist 保洁清单（聚合根）
// 完成状态只有一个布尔值：CompletedAt在第一次完成时写入，之后不再变化
type Checklist struct {
	ID          uint
	ApartmentID uint
	UserID      uint
	TemplateID  *uint
	Date        time.Time
	Completed   bool
	CompletedAt *time.Time
	Notes       string
	Tasks       []TaskResponse
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskResponse 清单中某个任务的执行结果
// 标题、类型、是否必填在创建时从模板复制（快照），模板后续修改不影响历史清单
type TaskResponse struct {
	ID             uint
	ChecklistID    uint
	TaskTemplateID *uint
	Title          string
	TaskType       TaskType
	Required       bool
	OrderIndex     int
	Completed      bool
	Value          string
	Notes          string
	PhotoPaths     []string
	UpdatedAt      time.Time
}

// FromTemplate 根据模板生成清单
// 任务按OrderIndex升序生成
func FromTemplate(tpl *Template, apartmentID, userID uint, date time.Time) *Checklist {
	tasks := make([]TaskTemplate, len(tpl.Tasks))
	copy(tasks, tpl.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].OrderIndex < tasks[j].OrderIndex
	})

	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		taskID := task.ID
		responses[i] = TaskResponse{
			TaskTemplateID: &taskID,
			Title:          task.Title,
			TaskType:       task.TaskType,
			Required:       task.Required,
			OrderIndex:     task.OrderIndex,
		}
	}

	now := time.Now()
	templateID := tpl.ID
	return &Checklist{
		ApartmentID: apartmentID,
		UserID:      userID,
		TemplateID:  &templateID,
		Date:        date,
		Tasks:       responses,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetCompleted 修改完成状态
// 第一次完成时记录完成时间；取消完成不清除完成时间
func (c *Checklist) SetCompleted(completed bool, at time.Time) {
	c.Completed = completed
	if completed && c.CompletedAt == nil {
		c.CompletedAt = &at
	}
	c.UpdatedAt = at
}

// Update 更新任务结果
func (r *TaskResponse) Update(completed *bool, value, notes *string) error {
	if value != nil {
		if err := r.TaskType.ValidateValue(*value); err != nil {
			return err
		}
		r.Value = *value
	}
	if completed != nil {
		r.Completed = *completed
	}
	if notes != nil {
		r.Notes = *notes
	}
	r.UpdatedAt = time.Now()
	return nil
}

// AddPhoto 追加照片路径
func (r *TaskResponse) AddPhoto(path string) {
	r.PhotoPaths = append(r.PhotoPaths, path)
	r.UpdatedAt = time.Now()
}

// ListParams 清单列表查询参数
type ListParams struct {
	ApartmentID *uint
	UserID      *uint
	Completed   *bool
	From        *time.Time // date >= From
	To          *time.Time // date <= To
	Page        int
	PageSize    int // 0表示不分页
}
