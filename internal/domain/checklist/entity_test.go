package checklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	tpl, err := NewTemplate("Standard", "", nil, []TaskSpec{
		{Title: "Cambiare lenzuola", TaskType: "checkbox", Required: true},
		{Title: "Frigo pulito?", TaskType: "yes_no"},
		{Title: "Foto bagno", TaskType: "photo"},
	})
	require.NoError(t, err)
	assert.True(t, tpl.IsGeneral())
	require.Len(t, tpl.Tasks, 3)
	for i, task := range tpl.Tasks {
		assert.Equal(t, i, task.OrderIndex)
	}

	_, err = NewTemplate("Bad", "", nil, []TaskSpec{{Title: "x", TaskType: "video"}})
	assert.ErrorIs(t, err, ErrInvalidTaskType)

	_, err = NewTemplate(" ", "", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTemplateName)
}

func TestFromTemplateOrdersTasks(t *testing.T) {
	tpl := &Template{
		ID: 4,
		Tasks: []TaskTemplate{
			{ID: 11, Title: "terzo", TaskType: TaskText, OrderIndex: 2},
			{ID: 12, Title: "primo", TaskType: TaskCheckbox, OrderIndex: 0, Required: true},
			{ID: 13, Title: "secondo", TaskType: TaskPhoto, OrderIndex: 1},
		},
	}
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	c := FromTemplate(tpl, 1, 2, date)

	require.Len(t, c.Tasks, 3)
	assert.Equal(t, []string{"primo", "secondo", "terzo"}, []string{c.Tasks[0].Title, c.Tasks[1].Title, c.Tasks[2].Title})
	assert.Equal(t, uint(12), *c.Tasks[0].TaskTemplateID)
	assert.True(t, c.Tasks[0].Required)
	assert.Equal(t, uint(4), *c.TemplateID)
	assert.Equal(t, date, c.Date)
	assert.False(t, c.Completed)
	assert.Equal(t, "terzo", tpl.Tasks[0].Title, "模板本身的顺序不应被修改")
}

func TestSetCompleted(t *testing.T) {
	c := &Checklist{}
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	c.SetCompleted(true, first)
	require.NotNil(t, c.CompletedAt)
	assert.Equal(t, first, *c.CompletedAt)

	c.SetCompleted(false, later)
	assert.False(t, c.Completed)
	assert.Equal(t, first, *c.CompletedAt)

	c.SetCompleted(true, later)
	assert.Equal(t, first, *c.CompletedAt, "完成时间只在第一次完成时写入")
}

func TestTaskResponseUpdate(t *testing.T) {
	r := &TaskResponse{TaskType: TaskYesNo}
	done := true
	yes := "yes"
	maybe := "maybe"

	require.NoError(t, r.Update(&done, &yes, nil))
	assert.True(t, r.Completed)
	assert.Equal(t, "yes", r.Value)

	assert.ErrorIs(t, r.Update(nil, &maybe, nil), ErrInvalidYesNoValue)
	assert.Equal(t, "yes", r.Value)

	text := &TaskResponse{TaskType: TaskText}
	require.NoError(t, text.Update(nil, &maybe, nil))
	assert.Equal(t, "maybe", text.Value)
}
