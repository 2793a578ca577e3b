package checklist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
)

// memoryStorage 内存照片存储
type memoryStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
	next    int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (m *memoryStorage) Save(_ context.Context, r io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.next++
	p := fmt.Sprintf("/uploads/%d.png", m.next)
	m.files[p] = buf.Bytes()
	return p, nil
}

func (m *memoryStorage) Remove(_ context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[p]; !ok {
		return errors.New("missing")
	}
	delete(m.files, p)
	return nil
}

func (m *memoryStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type fixture struct {
	apartment *apartment.Apartment
	operator  *user.User
	general   *checklist.Template
	templates checklist.TemplateRepository
	storage   *memoryStorage

	checklists *ChecklistUseCase
	tasks      *TaskUseCase
	templateUC *TemplateUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := mysql.NewDB(&config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	apartments := mysql.NewApartmentRepository(db)
	users := mysql.NewUserRepository(db)
	repo := mysql.NewChecklistRepository(db)
	txManager := mysql.NewTxManager(db)

	f := &fixture{
		templates: mysql.NewTemplateRepository(db),
		storage:   newMemoryStorage(),
	}

	f.apartment, err = apartment.NewApartment("Casa Verde", "Via Roma 1", "")
	require.NoError(t, err)
	require.NoError(t, apartments.Create(ctx, f.apartment))

	f.operator, err = user.NewOperator("Maria")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, f.operator))

	f.general = f.seedTemplate(t, "Pulizia standard", nil)

	f.checklists = NewChecklistUseCase(repo, f.templates, apartments, users, txManager)
	f.tasks = NewTaskUseCase(repo, f.storage, txManager)
	f.templateUC = NewTemplateUseCase(f.templates, apartments)
	return f
}

func (f *fixture) seedTemplate(t *testing.T, name string, apartmentID *uint) *checklist.Template {
	t.Helper()
	tpl, err := checklist.NewTemplate(name, "", apartmentID, []checklist.TaskSpec{
		{Title: "Cambiare lenzuola", TaskType: "checkbox", Required: true},
		{Title: "Frigo pulito?", TaskType: "yes_no"},
		{Title: "Foto bagno", TaskType: "photo"},
		{Title: "Note finali", TaskType: "text"},
	})
	require.NoError(t, err)
	require.NoError(t, f.templates.Create(context.Background(), tpl))
	return tpl
}

// taskOfType 清单中指定类型的任务
func taskOfType(t *testing.T, info *ChecklistInfo, taskType checklist.TaskType) TaskInfo {
	t.Helper()
	for _, task := range info.Tasks {
		if task.TaskType == string(taskType) {
			return task
		}
	}
	t.Fatalf("清单中没有%s任务", taskType)
	return TaskInfo{}
}
