package checklist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/domain/user"
)

func TestChecklistUseCase_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("默认使用通用模板和当天日期", func(t *testing.T) {
		info, err := f.checklists.Create(ctx, CreateChecklistRequest{
			ApartmentID: f.apartment.ID,
			UserID:      f.operator.ID,
			Notes:       "check-out ore 10",
		})
		require.NoError(t, err)
		assert.Equal(t, time.Now().Format(DateLayout), info.Date)
		assert.Equal(t, f.general.ID, *info.TemplateID)
		assert.Equal(t, "check-out ore 10", info.Notes)
		require.Len(t, info.Tasks, 4)
		for i, task := range info.Tasks {
			assert.Equal(t, i, task.OrderIndex)
			assert.NotZero(t, task.ID)
			assert.False(t, task.Completed)
		}
		assert.True(t, info.Tasks[0].Required)
	})

	t.Run("公寓专属模板优先", func(t *testing.T) {
		own := f.seedTemplate(t, "Casa Verde", &f.apartment.ID)
		date := time.Date(2026, 3, 14, 17, 30, 0, 0, time.Local)
		info, err := f.checklists.StartShift(ctx, f.apartment.ID, f.operator.ID, &date)
		require.NoError(t, err)
		assert.Equal(t, own.ID, *info.TemplateID)
		assert.Equal(t, "2026-03-14", info.Date)
	})

	t.Run("指定模板", func(t *testing.T) {
		info, err := f.checklists.Create(ctx, CreateChecklistRequest{
			ApartmentID: f.apartment.ID,
			UserID:      f.operator.ID,
			TemplateID:  &f.general.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, f.general.ID, *info.TemplateID)
	})

	t.Run("关联不存在", func(t *testing.T) {
		_, err := f.checklists.Create(ctx, CreateChecklistRequest{ApartmentID: 999, UserID: f.operator.ID})
		assert.ErrorIs(t, err, apartment.ErrApartmentNotFound)

		_, err = f.checklists.Create(ctx, CreateChecklistRequest{ApartmentID: f.apartment.ID, UserID: 999})
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		missing := uint(999)
		_, err = f.checklists.Create(ctx, CreateChecklistRequest{ApartmentID: f.apartment.ID, UserID: f.operator.ID, TemplateID: &missing})
		assert.ErrorIs(t, err, checklist.ErrTemplateNotFound)
	})
}

func TestChecklistUseCase_ListAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		date := time.Date(2026, 5, day, 9, 0, 0, 0, time.Local)
		_, err := f.checklists.StartShift(ctx, f.apartment.ID, f.operator.ID, &date)
		require.NoError(t, err)
	}

	page, err := f.checklists.List(ctx, ListChecklistsRequest{ApartmentID: &f.apartment.ID, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Checklists, 2)
	assert.Equal(t, "2026-05-03", page.Checklists[0].Date, "日期倒序")
	assert.Empty(t, page.Checklists[0].Tasks, "列表不加载任务")

	target := page.Checklists[1].ID
	done := true
	updated, err := f.checklists.Update(ctx, UpdateChecklistRequest{ID: target, Completed: &done})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	first := *updated.CompletedAt

	// 取消完成不清除时间，再次完成不移动时间
	undone := false
	notes := "manca sapone"
	updated, err = f.checklists.Update(ctx, UpdateChecklistRequest{ID: target, Completed: &undone, Notes: &notes})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)

	updated, err = f.checklists.Update(ctx, UpdateChecklistRequest{ID: target, Completed: &done})
	require.NoError(t, err)
	assert.True(t, first.Equal(*updated.CompletedAt))
	assert.Equal(t, "manca sapone", updated.Notes)

	completed := true
	page, err = f.checklists.List(ctx, ListChecklistsRequest{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = f.checklists.Update(ctx, UpdateChecklistRequest{ID: 999, Completed: &done})
	assert.ErrorIs(t, err, checklist.ErrChecklistNotFound)
}

func TestNormalizePage(t *testing.T) {
	page, size := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)

	_, size = normalizePage(2, 1000)
	assert.Equal(t, maxPageSize, size)
}
