package checkup

import (
	"context"
	"log"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// Empty fields are left unchanged.
type UpdateCheckupInput struct {
	Date string
	Type string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateCheckup struct {
	repo  domain.Repository
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewUpdateCheckup(
	repo domain.Repository,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *UpdateCheckup {
	return &UpdateCheckup{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute patches a checkup owned by patientID. A date change reserves the
// new slot first: if that conditional update loses, nothing has been touched.
func (uc *UpdateCheckup) Execute(
	ctx context.Context,
	patientID uint,
	checkupID uint,
	in UpdateCheckupInput,
) (*models.Checkup, error) {

	ck, err := uc.repo.GetCheckupForPatient(ctx, checkupID, patientID)
	if err != nil {
		return nil, err
	}

	oldDate := ck.Date
	swapped := in.Date != "" && in.Date != ck.Date

	if swapped {
		if err := uc.repo.ReserveSlot(ctx, in.Date); err != nil {
			return nil, err
		}

		if err := uc.repo.ReleaseSlot(ctx, oldDate); err != nil {
			// Keep slot state consistent: give the new slot back.
			if relErr := uc.repo.ReleaseSlot(ctx, in.Date); relErr != nil {
				log.Printf("failed to release slot %q during swap rollback: %v", in.Date, relErr)
			}
			return nil, err
		}

		ck.Date = in.Date
	}

	if in.Type != "" {
		parsed, err := domain.ParseType(in.Type)
		if err != nil {
			if swapped {
				uc.rollbackSwap(ctx, ck, oldDate)
			}
			return nil, err
		}
		ck.Type = string(parsed)
	}

	if err := uc.repo.UpdateCheckup(ctx, ck); err != nil {
		if swapped {
			uc.rollbackSwap(ctx, ck, oldDate)
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx,
		cache.SingleCheckupKey(ck.ID),
		cache.AllDatesKey,
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &patientID,
		Action:   "checkup_updated",
		Entity:   "checkup",
		EntityID: &ck.ID,
		Metadata: map[string]any{"date": ck.Date},
	})

	return ck, nil
}

// rollbackSwap undoes a reserve-new/release-old pair. Best effort: the old
// slot may have been taken meanwhile, which only widens availability.
func (uc *UpdateCheckup) rollbackSwap(
	ctx context.Context,
	ck *models.Checkup,
	oldDate string,
) {
	if err := uc.repo.ReleaseSlot(ctx, ck.Date); err != nil {
		log.Printf("failed to release slot %q during swap rollback: %v", ck.Date, err)
	}
	if err := uc.repo.ReserveSlot(ctx, oldDate); err != nil {
		log.Printf("failed to re-reserve slot %q during swap rollback: %v", oldDate, err)
	}
	ck.Date = oldDate
}
