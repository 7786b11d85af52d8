package checkup

import (
	"context"
	"strconv"

	"github.com/cliniccare/clinic-scheduler/internal/cache"
	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
)

type ListCheckups struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewListCheckups(repo domain.Repository, c *cache.Cache) *ListCheckups {
	return &ListCheckups{repo: repo, cache: c}
}

// Execute lists checkups: all of them for staff, the caller's own for
// patients. Listing entries are paginated snapshots and age out by TTL rather
// than being invalidated per write.
func (uc *ListCheckups) Execute(
	ctx context.Context,
	actorID uint,
	actorRole user.Role,
	p pagination.Params,
) ([]models.Checkup, error) {

	owner := "all"
	if actorRole == user.RolePatient {
		owner = strconv.FormatUint(uint64(actorID), 10)
	}

	key := cache.CheckupListKey(owner, p.Skip, p.Take, p.Order)

	var cks []models.Checkup
	if uc.cache.Get(ctx, key, &cks) {
		return cks, nil
	}

	var err error
	if actorRole.IsStaff() {
		cks, err = uc.repo.ListCheckups(ctx, p)
	} else {
		cks, err = uc.repo.ListCheckupsForPatient(ctx, actorID, p)
	}
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, key, cks)

	return cks, nil
}
