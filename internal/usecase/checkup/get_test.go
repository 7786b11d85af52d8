package checkup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cliniccare/clinic-scheduler/internal/cache"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
)

func TestGetCheckup_MissFillsCache(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, store := newTestCache()
	uc := NewGetCheckup(repo, cacheLayer)

	repo.On("GetCheckup", mock.Anything, uint(3)).Return(existingCheckup(), nil).Once()

	ck, err := uc.Execute(context.Background(), 7, user.RolePatient, 3)

	assert.NoError(t, err)
	assert.Equal(t, uint(3), ck.ID)
	assert.True(t, store.has(cache.SingleCheckupKey(3)), "miss must populate the cache")

	// Second read is served from cache.
	_, err = uc.Execute(context.Background(), 7, user.RolePatient, 3)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetCheckup_CachedRowDoesNotLeakAcrossPatients(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, _ := newTestCache()
	uc := NewGetCheckup(repo, cacheLayer)

	repo.On("GetCheckup", mock.Anything, uint(3)).Return(existingCheckup(), nil)

	// Owner warms the cache, then a different patient asks for the same row.
	_, err := uc.Execute(context.Background(), 7, user.RolePatient, 3)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), 8, user.RolePatient, 3)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCheckupNotFound))
}

func TestGetCheckup_StaffSeesAny(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, _ := newTestCache()
	uc := NewGetCheckup(repo, cacheLayer)

	repo.On("GetCheckup", mock.Anything, uint(3)).Return(existingCheckup(), nil)

	ck, err := uc.Execute(context.Background(), 99, user.RoleAdmin, 3)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), ck.PatientID)
}

func TestListCheckups_StaffListsAll(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, _ := newTestCache()
	uc := NewListCheckups(repo, cacheLayer)

	p := pagination.Params{Skip: 0, Take: 2, Order: "desc"}
	repo.On("ListCheckups", mock.Anything, p).
		Return([]models.Checkup{*existingCheckup()}, nil).Once()

	cks, err := uc.Execute(context.Background(), 99, user.RoleModerator, p)

	assert.NoError(t, err)
	assert.Len(t, cks, 1)
	repo.AssertNotCalled(t, "ListCheckupsForPatient", mock.Anything, mock.Anything, mock.Anything)

	// Same page again: served from cache, repo not hit a second time.
	_, err = uc.Execute(context.Background(), 99, user.RoleModerator, p)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListCheckups_PatientScopedToOwnRows(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, _ := newTestCache()
	uc := NewListCheckups(repo, cacheLayer)

	p := pagination.Params{Skip: 0, Take: 2, Order: "desc"}
	repo.On("ListCheckupsForPatient", mock.Anything, uint(7), p).
		Return([]models.Checkup{*existingCheckup()}, nil)

	cks, err := uc.Execute(context.Background(), 7, user.RolePatient, p)

	assert.NoError(t, err)
	assert.Len(t, cks, 1)
	repo.AssertNotCalled(t, "ListCheckups", mock.Anything, mock.Anything)
}
