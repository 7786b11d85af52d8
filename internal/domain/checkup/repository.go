package checkup

import (
	"context"

	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
)

type Repository interface {
	// -------- Daily slots --------
	ListAvailableSlots(ctx context.Context) ([]models.DailySlot, error)

	// ReserveSlot flips date to unavailable only if it is currently
	// available, as a single conditional update. Losing the race and a
	// missing slot are distinct business errors.
	ReserveSlot(ctx context.Context, date string) error

	// ReleaseSlot is idempotent: releasing a free or unknown slot is a
	// no-op success, so compensation paths are safe to retry.
	ReleaseSlot(ctx context.Context, date string) error

	ReleaseAllSlots(ctx context.Context) error

	// -------- Checkups --------
	CreateCheckup(ctx context.Context, ck *models.Checkup) error

	GetCheckup(ctx context.Context, checkupID uint) (*models.Checkup, error)

	GetCheckupForPatient(
		ctx context.Context,
		checkupID uint,
		patientID uint,
	) (*models.Checkup, error)

	ListCheckups(ctx context.Context, p pagination.Params) ([]models.Checkup, error)

	ListCheckupsForPatient(
		ctx context.Context,
		patientID uint,
		p pagination.Params,
	) ([]models.Checkup, error)

	UpdateCheckup(ctx context.Context, ck *models.Checkup) error

	DeleteCheckup(ctx context.Context, checkupID uint) error
}
