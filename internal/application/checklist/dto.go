package checklist

import (
	"time"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
)

// DateLayout 清单日期格式
const DateLayout = "2006-01-02"

// ChecklistInfo 清单
type ChecklistInfo struct {
	ID          uint       `json:"id"`
	ApartmentID uint       `json:"apartment_id"`
	UserID      uint       `json:"user_id"`
	TemplateID  *uint      `json:"template_id,omitempty"`
	Date        string     `json:"date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes"`
	Tasks       []TaskInfo `json:"tasks,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskInfo 任务结果
type TaskInfo struct {
	ID             uint      `json:"id"`
	ChecklistID    uint      `json:"checklist_id"`
	TaskTemplateID *uint     `json:"task_template_id,omitempty"`
	Title          string    `json:"title"`
	TaskType       string    `json:"task_type"`
	Required       bool      `json:"required"`
	OrderIndex     int       `json:"order_index"`
	Completed      bool      `json:"completed"`
	Value          string    `json:"value"`
	Notes          string    `json:"notes"`
	PhotoPaths     []string  `json:"photo_paths"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TemplateInfo 清单模板
type TemplateInfo struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ApartmentID *uint              `json:"apartment_id,omitempty"`
	IsActive    bool               `json:"is_active"`
	Tasks       []TaskTemplateInfo `json:"tasks"`
	CreatedAt   time.Time          `json:"created_at"`
}

// TaskTemplateInfo 模板任务
type TaskTemplateInfo struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskType    string `json:"task_type"`
	Required    bool   `json:"required"`
	OrderIndex  int    `json:"order_index"`
}

// ToChecklistInfo 领域实体 → DTO
func ToChecklistInfo(c *checklist.Checklist) ChecklistInfo {
	info := ChecklistInfo{
		ID:          c.ID,
		ApartmentID: c.ApartmentID,
		UserID:      c.UserID,
		TemplateID:  c.TemplateID,
		Date:        c.Date.Format(DateLayout),
		Completed:   c.Completed,
		CompletedAt: c.CompletedAt,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
	}
	if len(c.Tasks) > 0 {
		info.Tasks = ToTaskInfos(c.Tasks)
	}
	return info
}

// ToTaskInfo 领域实体 → DTO
func ToTaskInfo(t *checklist.TaskResponse) TaskInfo {
	photos := t.PhotoPaths
	if photos == nil {
		photos = []string{}
	}
	return TaskInfo{
		ID:             t.ID,
		ChecklistID:    t.ChecklistID,
		TaskTemplateID: t.TaskTemplateID,
		Title:          t.Title,
		TaskType:       string(t.TaskType),
		Required:       t.Required,
		OrderIndex:     t.OrderIndex,
		Completed:      t.Completed,
		Value:          t.Value,
		Notes:          t.Notes,
		PhotoPaths:     photos,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTaskInfos 批量转换
func ToTaskInfos(tasks []checklist.TaskResponse) []TaskInfo {
	list := make([]TaskInfo, len(tasks))
	for i := range tasks {
		list[i] = ToTaskInfo(&tasks[i])
	}
	return list
}

// ToTemplateInfo 领域实体 → DTO
func ToTemplateInfo(t *checklist.Template) TemplateInfo {
	tasks := make([]TaskTemplateInfo, len(t.Tasks))
	for i, task := range t.Tasks {
		tasks[i] = TaskTemplateInfo{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			TaskType:    string(task.TaskType),
			Required:    task.Required,
			OrderIndex:  task.OrderIndex,
		}
	}
	return TemplateInfo{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ApartmentID: t.ApartmentID,
		IsActive:    t.IsActive,
		Tasks:       tasks,
		CreatedAt:   t.CreatedAt,
	}
}
