package dailydate

import (
	"context"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
)

type ReleaseAll struct {
	repo  domain.Repository
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewReleaseAll(
	repo domain.Repository,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *ReleaseAll {
	return &ReleaseAll{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// Execute resets the whole pool to available, the start-of-schedule reset
// staff trigger manually or from a scheduler.
func (uc *ReleaseAll) Execute(ctx context.Context, actorID uint) error {
	if err := uc.repo.ReleaseAllSlots(ctx); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, cache.AllDatesKey)

	uc.audit.Dispatch(audit.Event{
		ActorID: &actorID,
		Action:  "daily_dates_released",
		Entity:  "daily_slot",
	})

	return nil
}
