package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appapartment "github.com/xiebiao/aptcare/internal/application/apartment"
	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
	appreport "github.com/xiebiao/aptcare/internal/application/report"
	"github.com/xiebiao/aptcare/internal/application/setup"
	appuser "github.com/xiebiao/aptcare/internal/application/user"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/aptcare/internal/infrastructure/storage"
	"github.com/xiebiao/aptcare/internal/interface/http/handler"
	"github.com/xiebiao/aptcare/internal/interface/http/middleware"
	"github.com/xiebiao/aptcare/pkg/jwt"
)

// memorySessions 内存会话与黑名单
type memorySessions struct {
	mu        sync.Mutex
	sessions  map[uint]redis.Session
	blacklist map[string]bool
}

func newMemorySessions() *memorySessions {
	return &memorySessions{
		sessions:  make(map[uint]redis.Session),
		blacklist: make(map[string]bool),
	}
}

func (m *memorySessions) SaveSession(_ context.Context, sess redis.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.UserID] = sess
	return nil
}

func (m *memorySessions) DeleteSession(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *memorySessions) AddToBlacklist(_ context.Context, token string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[token] = true
	return nil
}

func (m *memorySessions) IsInBlacklist(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blacklist[token], nil
}

// testApp 完整的HTTP应用：SQLite内存库 + 本地照片目录 + 内存会话
type testApp struct {
	engine    *gin.Engine
	sessions  *memorySessions
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	uploadDir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		JWT: config.JWTConfig{
			Secret:             "router-test-secret",
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
		},
		Upload: config.UploadConfig{Dir: uploadDir, MaxSizeMB: 1, URLPrefix: "/uploads"},
		Seed:   config.SeedConfig{ManagerUsername: "manager", ManagerPassword: "Manager123"},
	}

	db, err := mysql.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	// 仓储
	txManager := mysql.NewTxManager(db)
	userRepo := mysql.NewUserRepository(db)
	apartmentRepo := mysql.NewApartmentRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	itemRepo := mysql.NewItemRepository(db)
	ledgerRepo := mysql.NewLedgerRepository(db)
	alertRepo := mysql.NewAlertRepository(db)
	checklistRepo := mysql.NewChecklistRepository(db)
	templateRepo := mysql.NewTemplateRepository(db)
	userService := user.NewService(userRepo)

	// 初始数据：分类、管理员、通用模板
	seed := setup.NewSeedUseCase(categoryRepo, itemRepo, apartmentRepo, templateRepo, userRepo, userService, cfg.Seed)
	require.NoError(t, seed.Execute(context.Background()))

	photos, err := storage.NewLocalPhotoStorage(cfg.Upload)
	require.NoError(t, err)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
	sessions := newMemorySessions()

	// 用例
	checklists := appchecklist.NewChecklistUseCase(checklistRepo, templateRepo, apartmentRepo, userRepo, txManager)
	quantity := appinventory.NewApplyQuantityChangeUseCase(itemRepo, ledgerRepo, alertRepo, txManager)

	handlers := &Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewLoginUseCase(userService, checklists, txManager, jwtManager, sessions, cfg.JWT.RefreshTokenExpire),
			appuser.NewLogoutUseCase(jwtManager, sessions),
		),
		User:      handler.NewUserHandler(appuser.NewUserUseCase(userService, userRepo)),
		Apartment: handler.NewApartmentHandler(appapartment.NewApartmentUseCase(apartmentRepo, txManager)),
		Checklist: handler.NewChecklistHandler(checklists),
		Task:      handler.NewTaskHandler(appchecklist.NewTaskUseCase(checklistRepo, photos, txManager), cfg),
		Template:  handler.NewTemplateHandler(appchecklist.NewTemplateUseCase(templateRepo, apartmentRepo)),
		Inventory: handler.NewInventoryHandler(
			appinventory.NewItemUseCase(itemRepo, categoryRepo, ledgerRepo, alertRepo, apartmentRepo, quantity, txManager),
			appinventory.NewCategoryUseCase(categoryRepo),
		),
		Alert:  handler.NewAlertHandler(appinventory.NewAlertUseCase(alertRepo, itemRepo, apartmentRepo, txManager)),
		Report: handler.NewReportHandler(appreport.NewReportUseCase(apartmentRepo, itemRepo, alertRepo, categoryRepo, checklistRepo, userRepo)),
	}

	return &testApp{
		engine:    New(cfg, handlers, middleware.NewAuthMiddleware(jwtManager, sessions)),
		sessions:  sessions,
		uploadDir: uploadDir,
	}
}

// envelope 统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// call 发送JSON请求并解码统一响应，out不为nil时解码data
func (a *testApp) call(t *testing.T, method, path, token string, body, out interface{}) envelope {
	t.Helper()
	w := a.do(t, method, path, token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil && env.Code == 0 {
		require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
	}
	return env
}

// mustCall 要求业务成功
func (a *testApp) mustCall(t *testing.T, method, path, token string, body, out interface{}) {
	t.Helper()
	env := a.call(t, method, path, token, body, out)
	require.Equal(t, 0, env.Code, env.Message)
}

func (a *testApp) upload(t *testing.T, path, token string, content []byte) envelope {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type loginResult struct {
	User struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	ChecklistID  uint   `json:"checklist_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *testApp) managerLogin(t *testing.T) loginResult {
	t.Helper()
	var res loginResult
	a.mustCall(t, http.MethodPost, "/api/v1/auth/manager/login", "",
		map[string]string{"username": "manager", "password": "Manager123"}, &res)
	return res
}

func (a *testApp) createApartment(t *testing.T, token, name string) uint {
	t.Helper()
	var apt struct {
		ID uint `json:"id"`
	}
	a.mustCall(t, http.MethodPost, "/api/v1/apartments", token, map[string]string{"name": name, "address": "Via Roma 1"}, &apt)
	return apt.ID
}

func jsonUnmarshal(data json.RawMessage, out interface{}) error {
	return json.Unmarshal(data, out)
}
