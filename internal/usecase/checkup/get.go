package checkup

import (
	"context"

	"github.com/cliniccare/clinic-scheduler/internal/cache"
	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

type GetCheckup struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewGetCheckup(repo domain.Repository, c *cache.Cache) *GetCheckup {
	return &GetCheckup{repo: repo, cache: c}
}

// Execute returns one checkup through the single-entity cache. Ownership is
// checked after retrieval so a cached row never leaks across patients.
func (uc *GetCheckup) Execute(
	ctx context.Context,
	actorID uint,
	actorRole user.Role,
	checkupID uint,
) (*models.Checkup, error) {

	key := cache.SingleCheckupKey(checkupID)

	var ck models.Checkup
	if !uc.cache.Get(ctx, key, &ck) {
		fresh, err := uc.repo.GetCheckup(ctx, checkupID)
		if err != nil {
			return nil, err
		}
		ck = *fresh

		uc.cache.Set(ctx, key, ck)
	}

	if actorRole == user.RolePatient && ck.PatientID != actorID {
		return nil, httperr.ErrBusiness(httperr.CodeCheckupNotFound)
	}

	return &ck, nil
}
