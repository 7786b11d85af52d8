package dailydate

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	infraRepo "github.com/cliniccare/clinic-scheduler/internal/infra/repository"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

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

type fixture struct {
	db    *gorm.DB
	repo  *infraRepo.ClinicGormRepository
	cache *cache.Cache
	store *memStore
	audit *audit.Dispatcher
}

func newFixture(t *testing.T, dates ...string) fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.DailySlot{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, date := range dates {
		if err := db.Create(&models.DailySlot{Date: date, Available: true}).Error; err != nil {
			t.Fatalf("seed slot %q: %v", date, err)
		}
	}

	store := newMemStore()
	return fixture{
		db:    db,
		repo:  infraRepo.NewClinicGormRepository(db),
		cache: cache.New(store, time.Hour),
		store: store,
		audit: audit.NewDispatcher(audit.New(db)),
	}
}

func TestListAvailable_FillsCacheOnMiss(t *testing.T) {
	f := newFixture(t, "06:00", "07:00")
	uc := NewListAvailable(f.repo, f.cache)
	ctx := context.Background()

	slots, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !f.store.has(cache.AllDatesKey) {
		t.Fatalf("listing must be cached under %q", cache.AllDatesKey)
	}
}

func TestListAvailable_ServesStaleHitUntilInvalidated(t *testing.T) {
	f := newFixture(t, "06:00", "07:00")
	uc := NewListAvailable(f.repo, f.cache)
	ctx := context.Background()

	if _, err := uc.Execute(ctx); err != nil {
		t.Fatalf("warm: %v", err)
	}

	// Reserve behind the cache's back: the hit still shows both slots.
	if err := f.repo.ReserveSlot(ctx, "06:00"); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	slots, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected the cached listing, got %d slots", len(slots))
	}

	// After invalidation the next read reflects the reservation.
	f.cache.Invalidate(ctx, cache.AllDatesKey)

	slots, err = uc.Execute(ctx)
	if err != nil {
		t.Fatalf("fresh list: %v", err)
	}
	if len(slots) != 1 || slots[0].Date != "07:00" {
		t.Fatalf("expected only 07:00 available, got %+v", slots)
	}
}

func TestReleaseAll_ResetsPoolAndInvalidates(t *testing.T) {
	f := newFixture(t, "06:00", "07:00")
	listUC := NewListAvailable(f.repo, f.cache)
	releaseUC := NewReleaseAll(f.repo, f.cache, f.audit)
	ctx := context.Background()

	if err := f.repo.ReserveSlot(ctx, "06:00"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := listUC.Execute(ctx); err != nil {
		t.Fatalf("warm: %v", err)
	}

	if err := releaseUC.Execute(ctx, 1); err != nil {
		t.Fatalf("release all: %v", err)
	}

	if f.store.has(cache.AllDatesKey) {
		t.Fatalf("release must invalidate the available-dates listing")
	}

	slots, err := listUC.Execute(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected full pool after release, got %d slots", len(slots))
	}
}
