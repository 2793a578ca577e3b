package checklist

import (
	"strings"
	"time"
)

// Template 清单模板
// ApartmentID为nil表示通用模板
type Template struct {
	ID          uint
	Name        string
	Description string
	ApartmentID *uint
	IsActive    bool
	Tasks       []TaskTemplate
	CreatedAt   time.Time
}

// TaskTemplate 模板中的任务
type TaskTemplate struct {
	ID          uint
	TemplateID  uint
	Title       string
	Description string
	TaskType    TaskType
	Required    bool
	OrderIndex  int
}

// TaskSpec 创建模板时的任务定义
type TaskSpec struct {
	Title       string
	Description string
	TaskType    string
	Required    bool
}

// NewTemplate 创建模板，任务顺序即OrderIndex
func NewTemplate(name, description string, apartmentID *uint, specs []TaskSpec) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTemplateName
	}

	tasks := make([]TaskTemplate, len(specs))
	for i, spec := range specs {
		taskType, err := ParseTaskType(spec.TaskType)
		if err != nil {
			return nil, err
		}
		title := strings.TrimSpace(spec.Title)
		if title == "" {
			return nil, ErrInvalidTaskTitle
		}
		tasks[i] = TaskTemplate{
			Title:       title,
			Description: spec.Description,
			TaskType:    taskType,
			Required:    spec.Required,
			OrderIndex:  i,
		}
	}

	return &Template{
		Name:        name,
		Description: description,
		ApartmentID: apartmentID,
		IsActive:    true,
		Tasks:       tasks,
		CreatedAt:   time.Now(),
	}, nil
}

// IsGeneral 是否通用模板
func (t *Template) IsGeneral() bool {
	return t.ApartmentID == nil
}
