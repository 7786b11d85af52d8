package checkup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cliniccare/clinic-scheduler/internal/cache"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
)

func TestDeleteCheckup_PatientOwnScope(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, store := newTestCache()
	uc := NewDeleteCheckup(repo, cacheLayer, newTestDispatcher(t))

	store.put(cache.SingleCheckupKey(3), `{}`)
	store.put(cache.AllDatesKey, `[]`)

	repo.On("GetCheckupForPatient", mock.Anything, uint(3), uint(7)).Return(existingCheckup(), nil)
	repo.On("ReleaseSlot", mock.Anything, "06:00").Return(nil)
	repo.On("DeleteCheckup", mock.Anything, uint(3)).Return(nil)

	err := uc.Execute(context.Background(), 7, user.RolePatient, 3)

	assert.NoError(t, err)
	assert.False(t, store.has(cache.SingleCheckupKey(3)))
	assert.False(t, store.has(cache.AllDatesKey))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "GetCheckup", mock.Anything, mock.Anything)
}

func TestDeleteCheckup_StaffDeletesAny(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, _ := newTestCache()
	uc := NewDeleteCheckup(repo, cacheLayer, newTestDispatcher(t))

	repo.On("GetCheckup", mock.Anything, uint(3)).Return(existingCheckup(), nil)
	repo.On("ReleaseSlot", mock.Anything, "06:00").Return(nil)
	repo.On("DeleteCheckup", mock.Anything, uint(3)).Return(nil)

	err := uc.Execute(context.Background(), 99, user.RoleModerator, 3)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "GetCheckupForPatient", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCheckup_ForeignPatientCannotDelete(t *testing.T) {
	repo := new(MockRepository)
	cacheLayer, _ := newTestCache()
	uc := NewDeleteCheckup(repo, cacheLayer, newTestDispatcher(t))

	repo.On("GetCheckupForPatient", mock.Anything, uint(3), uint(8)).
		Return(nil, httperr.ErrBusiness(httperr.CodeCheckupNotFound))

	err := uc.Execute(context.Background(), 8, user.RolePatient, 3)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeCheckupNotFound))
	repo.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteCheckup", mock.Anything, mock.Anything)
}
