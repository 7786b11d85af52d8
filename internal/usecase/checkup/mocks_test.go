package checkup

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
)

// MockRepository is a mock implementation of checkup.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAvailableSlots(ctx context.Context) ([]models.DailySlot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.DailySlot), args.Error(1)
}

func (m *MockRepository) ReserveSlot(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockRepository) ReleaseSlot(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockRepository) ReleaseAllSlots(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) CreateCheckup(ctx context.Context, ck *models.Checkup) error {
	args := m.Called(ctx, ck)
	return args.Error(0)
}

func (m *MockRepository) GetCheckup(ctx context.Context, checkupID uint) (*models.Checkup, error) {
	args := m.Called(ctx, checkupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkup), args.Error(1)
}

func (m *MockRepository) GetCheckupForPatient(ctx context.Context, checkupID, patientID uint) (*models.Checkup, error) {
	args := m.Called(ctx, checkupID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkup), args.Error(1)
}

func (m *MockRepository) ListCheckups(ctx context.Context, p pagination.Params) ([]models.Checkup, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]models.Checkup), args.Error(1)
}

func (m *MockRepository) ListCheckupsForPatient(ctx context.Context, patientID uint, p pagination.Params) ([]models.Checkup, error) {
	args := m.Called(ctx, patientID, p)
	return args.Get(0).([]models.Checkup), args.Error(1)
}

func (m *MockRepository) UpdateCheckup(ctx context.Context, ck *models.Checkup) error {
	args := m.Called(ctx, ck)
	return args.Error(0)
}

func (m *MockRepository) DeleteCheckup(ctx context.Context, checkupID uint) error {
	args := m.Called(ctx, checkupID)
	return args.Error(0)
}

// memStore backs the cache layer in tests; entries never expire.
type memStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return raw, nil
}

func (s *memStore) SetEX(_ context.Context, key string, _ time.Duration, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	return ok
}

func (s *memStore) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
}

func newTestCache() (*cache.Cache, *memStore) {
	store := newMemStore()
	return cache.New(store, time.Hour), store
}

func newTestDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return audit.NewDispatcher(audit.New(db))
}
