package checklist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
)

func TestTaskUseCase_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info, err := f.checklists.StartShift(ctx, f.apartment.ID, f.operator.ID, nil)
	require.NoError(t, err)

	yesNo := taskOfType(t, info, checklist.TaskYesNo)
	done := true
	yes := "yes"
	updated, err := f.tasks.Update(ctx, UpdateTaskRequest{TaskID: yesNo.ID, Completed: &done, Value: &yes})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "yes", updated.Value)

	maybe := "forse"
	_, err = f.tasks.Update(ctx, UpdateTaskRequest{TaskID: yesNo.ID, Value: &maybe})
	assert.ErrorIs(t, err, checklist.ErrInvalidYesNoValue)

	text := taskOfType(t, info, checklist.TaskText)
	free := "tutto ok"
	_, err = f.tasks.Update(ctx, UpdateTaskRequest{TaskID: text.ID, Value: &free})
	require.NoError(t, err)

	tasks, err := f.tasks.List(ctx, info.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.Equal(t, "yes", tasks[1].Value)
	assert.Equal(t, "tutto ok", tasks[3].Value)

	_, err = f.tasks.Update(ctx, UpdateTaskRequest{TaskID: 999, Completed: &done})
	assert.ErrorIs(t, err, checklist.ErrTaskNotFound)

	_, err = f.tasks.List(ctx, 999)
	assert.ErrorIs(t, err, checklist.ErrChecklistNotFound)
}

func TestTaskUseCase_UploadPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info, err := f.checklists.StartShift(ctx, f.apartment.ID, f.operator.ID, nil)
	require.NoError(t, err)
	photo := taskOfType(t, info, checklist.TaskPhoto)

	t.Run("追加照片", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := f.tasks.UploadPhoto(ctx, photo.ID, strings.NewReader("img"))
			require.NoError(t, err)
		}
		tasks, err := f.tasks.List(ctx, info.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/1.png", "/uploads/2.png"}, tasks[2].PhotoPaths)
		assert.Empty(t, tasks[0].PhotoPaths)
	})

	t.Run("非拍照任务不落盘", func(t *testing.T) {
		before := f.storage.count()
		checkbox := taskOfType(t, info, checklist.TaskCheckbox)
		_, err := f.tasks.UploadPhoto(ctx, checkbox.ID, strings.NewReader("img"))
		assert.ErrorIs(t, err, checklist.ErrPhotoNotAllowed)
		assert.Equal(t, before, f.storage.count())
	})

	t.Run("存储失败", func(t *testing.T) {
		f.storage.saveErr = checklist.ErrInvalidPhotoType
		defer func() { f.storage.saveErr = nil }()
		_, err := f.tasks.UploadPhoto(ctx, photo.ID, strings.NewReader("gif"))
		assert.True(t, errors.Is(err, checklist.ErrInvalidPhotoType))
	})

	t.Run("任务不存在", func(t *testing.T) {
		_, err := f.tasks.UploadPhoto(ctx, 999, strings.NewReader("img"))
		assert.ErrorIs(t, err, checklist.ErrTaskNotFound)
	})
}
