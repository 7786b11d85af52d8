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

type CreateCheckupInput struct {
	Date string
	Type domain.Type
}

// ======================================================
// USE CASE
// ======================================================

type CreateCheckup struct {
	repo  domain.Repository
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewCreateCheckup(
	repo domain.Repository,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *CreateCheckup {
	return &CreateCheckup{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a checkup for patientID. Reserving the slot is a conditional
// update, so two concurrent bookings of the same date cannot both pass; if the
// insert then fails, the reservation is rolled back.
func (uc *CreateCheckup) Execute(
	ctx context.Context,
	patientID uint,
	in CreateCheckupInput,
) (*models.Checkup, error) {

	// --------------------------------------------------
	// 1. Reserve the slot (atomic check-and-take)
	// --------------------------------------------------
	if err := uc.repo.ReserveSlot(ctx, in.Date); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Insert the checkup, releasing the slot on failure
	// --------------------------------------------------
	ck := &models.Checkup{
		PatientID: patientID,
		Date:      in.Date,
		Type:      string(in.Type),
	}

	if err := uc.repo.CreateCheckup(ctx, ck); err != nil {
		if relErr := uc.repo.ReleaseSlot(ctx, in.Date); relErr != nil {
			log.Printf("failed to release slot %q after insert failure: %v", in.Date, relErr)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Invalidate the available-dates listing
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, cache.AllDatesKey)

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  &patientID,
		Action:   "checkup_created",
		Entity:   "checkup",
		EntityID: &ck.ID,
		Metadata: map[string]any{"date": ck.Date},
	})

	return ck, nil
}
