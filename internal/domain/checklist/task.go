package checklist

// TaskType 任务类型
type TaskType string

const (
	TaskCheckbox TaskType = "checkbox" // 勾选
	TaskYesNo    TaskType = "yes_no"   // 是/否
	TaskPhoto    TaskType = "photo"    // 拍照
	TaskText     TaskType = "text"     // 文本
)

// ParseTaskType 解析任务类型，未知值返回错误
func ParseTaskType(s string) (TaskType, error) {
	switch t := TaskType(s); t {
	case TaskCheckbox, TaskYesNo, TaskPhoto, TaskText:
		return t, nil
	default:
		return "", ErrInvalidTaskType
	}
}

// ValidateValue 校验任务回答内容
func (t TaskType) ValidateValue(value string) error {
	switch t {
	case TaskYesNo:
		if value != "" && value != "yes" && value != "no" {
			return ErrInvalidYesNoValue
		}
	case TaskCheckbox, TaskPhoto, TaskText:
	default:
		return ErrInvalidTaskType
	}
	return nil
}
