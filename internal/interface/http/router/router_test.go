package router

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func TestPing(t *testing.T) {
	app := newTestApp(t)

	env := app.call(t, http.MethodGet, "/ping", "", nil, nil)
	assert.Equal(t, 0, env.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.call(t, http.MethodGet, "/ping", "", nil, nil)

	w := app.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	env := app.call(t, http.MethodGet, "/api/v1/checklists", "", nil, nil)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)

	// 公寓列表不需要登录
	env = app.call(t, http.MethodGet, "/api/v1/apartments", "", nil, nil)
	assert.Equal(t, 0, env.Code)
}

func TestManagerLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)

	env := app.call(t, http.MethodPost, "/api/v1/auth/manager/login", "",
		map[string]string{"username": "manager", "password": "Wrong1234"}, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidPassword, env.Code)

	env = app.call(t, http.MethodPost, "/api/v1/auth/manager/login", "", map[string]string{"username": "manager"}, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestOperatorShift(t *testing.T) {
	app := newTestApp(t)
	manager := app.managerLogin(t)
	aptID := app.createApartment(t, manager.AccessToken, "Casa Verde")

	// 1. 保洁员登录生成当天清单
	var op loginResult
	app.mustCall(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"name": "Maria", "apartment_id": aptID, "date": "2026-06-15"}, &op)
	require.NotZero(t, op.ChecklistID)
	assert.Equal(t, "operator", op.User.Role)

	var checklist struct {
		Date  string `json:"date"`
		Tasks []struct {
			ID       uint   `json:"id"`
			TaskType string `json:"task_type"`
		} `json:"tasks"`
	}
	app.mustCall(t, http.MethodGet, fmt.Sprintf("/api/v1/checklists/%d", op.ChecklistID), op.AccessToken, nil, &checklist)
	assert.Equal(t, "2026-06-15", checklist.Date)
	require.Len(t, checklist.Tasks, 5)

	taskOf := func(taskType string) uint {
		for _, task := range checklist.Tasks {
			if task.TaskType == taskType {
				return task.ID
			}
		}
		t.Fatalf("没有%s类型的任务", taskType)
		return 0
	}

	// 2. yes_no任务只接受yes/no
	env := app.call(t, http.MethodPut, fmt.Sprintf("/api/v1/checklists/tasks/%d", taskOf("yes_no")), op.AccessToken,
		map[string]string{"value": "maybe"}, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	var task struct {
		Completed bool   `json:"completed"`
		Value     string `json:"value"`
	}
	app.mustCall(t, http.MethodPut, fmt.Sprintf("/api/v1/checklists/tasks/%d", taskOf("yes_no")), op.AccessToken,
		map[string]interface{}{"value": "yes", "completed": true}, &task)
	assert.True(t, task.Completed)
	assert.Equal(t, "yes", task.Value)

	// 3. 上传照片并通过/uploads访问
	env = app.upload(t, fmt.Sprintf("/api/v1/checklists/tasks/%d/upload", taskOf("photo")), op.AccessToken, pngBytes)
	require.Equal(t, 0, env.Code, env.Message)
	var photoTask struct {
		PhotoPaths []string `json:"photo_paths"`
	}
	require.NoError(t, jsonUnmarshal(env.Data, &photoTask))
	require.Len(t, photoTask.PhotoPaths, 1)
	assert.True(t, strings.HasPrefix(photoTask.PhotoPaths[0], "/uploads/"))
	_, err := os.Stat(filepath.Join(app.uploadDir, path.Base(photoTask.PhotoPaths[0])))
	assert.NoError(t, err)

	w := app.do(t, http.MethodGet, photoTask.PhotoPaths[0], "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 非照片任务不能上传
	env = app.upload(t, fmt.Sprintf("/api/v1/checklists/tasks/%d/upload", taskOf("text")), op.AccessToken, pngBytes)
	assert.NotEqual(t, 0, env.Code)

	// 非图片文件
	env = app.upload(t, fmt.Sprintf("/api/v1/checklists/tasks/%d/upload", taskOf("photo")), op.AccessToken, []byte("plain text"))
	assert.Equal(t, apperrors.ErrCodeInvalidFileType, env.Code)

	// 4. 完成清单
	var done struct {
		Completed   bool    `json:"completed"`
		CompletedAt *string `json:"completed_at"`
	}
	app.mustCall(t, http.MethodPut, fmt.Sprintf("/api/v1/checklists/%d", op.ChecklistID), op.AccessToken,
		map[string]bool{"completed": true}, &done)
	assert.True(t, done.Completed)
	assert.NotNil(t, done.CompletedAt)

	// 5. 保洁员不能访问报表
	env = app.call(t, http.MethodGet, "/api/v1/reports/dashboard", op.AccessToken, nil, nil)
	assert.Equal(t, apperrors.ErrCodeForbidden, env.Code)

	var stats struct {
		TotalChecklists int64   `json:"total_checklists"`
		CompletionRate  float64 `json:"completion_rate"`
	}
	app.mustCall(t, http.MethodGet, fmt.Sprintf("/api/v1/reports/apartments/%d/stats", aptID), manager.AccessToken, nil, &stats)
	assert.EqualValues(t, 1, stats.TotalChecklists)
	assert.Equal(t, float64(100), stats.CompletionRate)

	// 6. 登出后Token失效
	app.mustCall(t, http.MethodPost, "/api/v1/auth/logout", op.AccessToken, nil, nil)
	env = app.call(t, http.MethodGet, "/api/v1/checklists", op.AccessToken, nil, nil)
	assert.Equal(t, apperrors.ErrCodeTokenExpired, env.Code)
}

func TestOperatorLogin_UnknownApartment(t *testing.T) {
	app := newTestApp(t)

	env := app.call(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"name": "Maria", "apartment_id": 42}, nil)
	assert.Equal(t, apperrors.ErrCodeApartmentNotFound, env.Code)

	env = app.call(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"name": "Maria", "apartment_id": 1, "date": "15/06/2026"}, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestRefreshToken(t *testing.T) {
	app := newTestApp(t)
	manager := app.managerLogin(t)

	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	app.mustCall(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]string{"refresh_token": manager.RefreshToken}, &refreshed)
	require.NotEmpty(t, refreshed.AccessToken)

	app.mustCall(t, http.MethodGet, "/api/v1/users", refreshed.AccessToken, nil, nil)

	// Refresh Token不能直接访问接口
	env := app.call(t, http.MethodGet, "/api/v1/users", manager.RefreshToken, nil, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
}

func TestInventoryQuantityChange(t *testing.T) {
	app := newTestApp(t)
	manager := app.managerLogin(t)
	token := manager.AccessToken
	aptID := app.createApartment(t, token, "Casa Blu")

	var categories []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	app.mustCall(t, http.MethodGet, "/api/v1/inventory/categories", token, nil, &categories)
	require.NotEmpty(t, categories)

	// 1. 创建物品 quantity=5 min=3
	var item struct {
		ID uint `json:"id"`
	}
	app.mustCall(t, http.MethodPost, "/api/v1/inventory/items", token, map[string]interface{}{
		"apartment_id": aptID,
		"category_id":  categories[0].ID,
		"name":         "Carta igienica",
		"unit":         "rotoli",
		"quantity":     5,
		"min_quantity": 3,
	}, &item)
	itemPath := fmt.Sprintf("/api/v1/inventory/items/%d", item.ID)

	type changeResult struct {
		Item struct {
			Quantity      int   `json:"quantity"`
			LastUpdatedBy *uint `json:"last_updated_by"`
		} `json:"item"`
		OldQuantity int `json:"old_quantity"`
		Alert       *struct {
			ID       uint   `json:"id"`
			Severity string `json:"severity"`
		} `json:"alert"`
	}

	// 2. 5 → 3：触发medium告警，操作人为当前登录用户
	var first changeResult
	app.mustCall(t, http.MethodPut, itemPath, token, map[string]interface{}{"quantity": 3, "change_reason": "uso"}, &first)
	assert.Equal(t, 3, first.Item.Quantity)
	assert.Equal(t, 5, first.OldQuantity)
	require.NotNil(t, first.Alert)
	assert.Equal(t, "medium", first.Alert.Severity)
	require.NotNil(t, first.Item.LastUpdatedBy)
	assert.Equal(t, manager.User.ID, *first.Item.LastUpdatedBy)

	// 3. 3 → 0：不重复建告警，也不升级级别
	var second changeResult
	app.mustCall(t, http.MethodPut, itemPath, token, map[string]interface{}{"quantity": 0}, &second)
	assert.Equal(t, 0, second.Item.Quantity)
	assert.Nil(t, second.Alert)

	var open []struct {
		ID       uint   `json:"id"`
		Severity string `json:"severity"`
	}
	app.mustCall(t, http.MethodGet, fmt.Sprintf("/api/v1/inventory/alerts?apartment_id=%d&resolved=false", aptID), token, nil, &open)
	require.Len(t, open, 1)
	assert.Equal(t, "medium", open[0].Severity)

	// 4. 台账两条，最新在前
	var history []struct {
		OldQuantity int    `json:"old_quantity"`
		NewQuantity int    `json:"new_quantity"`
		Reason      string `json:"change_reason"`
	}
	app.mustCall(t, http.MethodGet, itemPath+"/history", token, nil, &history)
	require.Len(t, history, 2)
	assert.Equal(t, 3, history[0].OldQuantity)
	assert.Equal(t, 0, history[0].NewQuantity)
	assert.Equal(t, "uso", history[1].Reason)

	// 5. 负数在事务前拒绝
	env := app.call(t, http.MethodPut, itemPath, token, map[string]interface{}{"quantity": -1}, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	app.mustCall(t, http.MethodGet, itemPath+"/history", token, nil, &history)
	assert.Len(t, history, 2)

	// 6. 有未处理告警时不能删除
	env = app.call(t, http.MethodDelete, itemPath, token, nil, nil)
	assert.Equal(t, apperrors.ErrCodeItemHasOpenAlerts, env.Code)

	// 7. 处理告警，重复处理报错
	resolvePath := fmt.Sprintf("/api/v1/inventory/alerts/%d/resolve", open[0].ID)
	var resolved struct {
		Resolved   bool    `json:"resolved"`
		ResolvedAt *string `json:"resolved_at"`
	}
	app.mustCall(t, http.MethodPut, resolvePath, token, nil, &resolved)
	assert.True(t, resolved.Resolved)
	assert.NotNil(t, resolved.ResolvedAt)

	env = app.call(t, http.MethodPut, resolvePath, token, nil, nil)
	assert.Equal(t, apperrors.ErrCodeAlertResolved, env.Code)

	// 8. 处理后再次触发会新建告警
	var third changeResult
	app.mustCall(t, http.MethodPut, itemPath, token, map[string]interface{}{"quantity": 0}, &third)
	require.NotNil(t, third.Alert)
	assert.Equal(t, "high", third.Alert.Severity)
	assert.NotEqual(t, open[0].ID, third.Alert.ID)
}

func TestInventoryExports(t *testing.T) {
	app := newTestApp(t)
	manager := app.managerLogin(t)
	token := manager.AccessToken
	aptID := app.createApartment(t, token, "Casa Gialla")

	var categories []struct {
		ID uint `json:"id"`
	}
	app.mustCall(t, http.MethodGet, "/api/v1/inventory/categories", token, nil, &categories)
	app.mustCall(t, http.MethodPost, "/api/v1/inventory/items", token, map[string]interface{}{
		"apartment_id": aptID, "category_id": categories[0].ID, "name": "Sapone", "quantity": 0, "min_quantity": 2,
	}, nil)

	w := app.do(t, http.MethodGet, "/api/v1/reports/export/inventory/csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inventory_export_")
	assert.Contains(t, w.Body.String(), "Sapone")
	assert.Contains(t, w.Body.String(), "MISSING")

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reports/export/inventory/pdf?apartment_id=%d", aptID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = app.do(t, http.MethodGet, "/api/v1/reports/export/checklists/csv?start_date=2026-01-01&end_date=2026-12-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "checklists_export_")

	env := app.call(t, http.MethodGet, "/api/v1/reports/export/checklists/csv?start_date=yesterday", token, nil, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestInvalidPathID(t *testing.T) {
	app := newTestApp(t)
	manager := app.managerLogin(t)

	env := app.call(t, http.MethodGet, "/api/v1/inventory/items/abc", manager.AccessToken, nil, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	env = app.call(t, http.MethodGet, "/api/v1/inventory/items/999", manager.AccessToken, nil, nil)
	assert.Equal(t, apperrors.ErrCodeItemNotFound, env.Code)
}
