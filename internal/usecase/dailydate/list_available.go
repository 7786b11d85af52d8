package dailydate

import (
	"context"

	"github.com/cliniccare/clinic-scheduler/internal/cache"
	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

type ListAvailable struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewListAvailable(repo domain.Repository, c *cache.Cache) *ListAvailable {
	return &ListAvailable{repo: repo, cache: c}
}

// Execute returns the currently bookable slots, read through the shared
// "all-dates" entry. Every write that touches availability deletes that key,
// so a hit is never staler than the last slot mutation plus the TTL backstop.
func (uc *ListAvailable) Execute(ctx context.Context) ([]models.DailySlot, error) {
	var slots []models.DailySlot
	if uc.cache.Get(ctx, cache.AllDatesKey, &slots) {
		return slots, nil
	}

	slots, err := uc.repo.ListAvailableSlots(ctx)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, cache.AllDatesKey, slots)

	return slots, nil
}
