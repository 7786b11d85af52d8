package checkup

import (
	"context"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

type DeleteCheckup struct {
	repo  domain.Repository
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewDeleteCheckup(
	repo domain.Repository,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *DeleteCheckup {
	return &DeleteCheckup{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// Execute cancels a booking. Staff may delete any checkup; patients only
// their own. The slot is released before the row goes away, and release is
// idempotent, so a failed delete can simply be retried.
func (uc *DeleteCheckup) Execute(
	ctx context.Context,
	actorID uint,
	actorRole user.Role,
	checkupID uint,
) error {

	ck, err := uc.lookup(ctx, actorID, actorRole, checkupID)
	if err != nil {
		return err
	}

	if err := uc.repo.ReleaseSlot(ctx, ck.Date); err != nil {
		return err
	}

	if err := uc.repo.DeleteCheckup(ctx, ck.ID); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx,
		cache.SingleCheckupKey(ck.ID),
		cache.AllDatesKey,
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "checkup_deleted",
		Entity:   "checkup",
		EntityID: &ck.ID,
		Metadata: map[string]any{"date": ck.Date},
	})

	return nil
}

func (uc *DeleteCheckup) lookup(
	ctx context.Context,
	actorID uint,
	actorRole user.Role,
	checkupID uint,
) (*models.Checkup, error) {

	switch actorRole {
	case user.RoleAdmin, user.RoleModerator:
		return uc.repo.GetCheckup(ctx, checkupID)
	case user.RolePatient:
		return uc.repo.GetCheckupForPatient(ctx, checkupID, actorID)
	}
	return uc.repo.GetCheckupForPatient(ctx, checkupID, actorID)
}
