package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
)

type ClinicGormRepository struct {
	db *gorm.DB
}

func NewClinicGormRepository(db *gorm.DB) *ClinicGormRepository {
	return &ClinicGormRepository{db: db}
}

// --------------------------------------------------
// Daily slots
// --------------------------------------------------

func (r *ClinicGormRepository) ListAvailableSlots(
	ctx context.Context,
) ([]models.DailySlot, error) {

	var slots []models.DailySlot
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("date ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

// ReserveSlot is the compare-and-swap at the heart of booking: the UPDATE
// only matches a row that is still available, so of two concurrent bookings
// for the same date exactly one sees RowsAffected == 1.
func (r *ClinicGormRepository) ReserveSlot(
	ctx context.Context,
	date string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.DailySlot{}).
		Where("date = ? AND available = ?", date, true).
		Update("available", false)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.DailySlot{}).
			Where("date = ?", date).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			return httperr.ErrBusiness(httperr.CodeSlotNotFound)
		}
		return httperr.ErrBusiness(httperr.CodeDateNotAvailable)
	}

	return nil
}

func (r *ClinicGormRepository) ReleaseSlot(
	ctx context.Context,
	date string,
) error {

	// No row matched means the slot is already free or unknown; both are
	// no-op successes so delete/rollback paths can retry safely.
	return r.db.WithContext(ctx).
		Model(&models.DailySlot{}).
		Where("date = ?", date).
		Update("available", true).Error
}

func (r *ClinicGormRepository) ReleaseAllSlots(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.DailySlot{}).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Update("available", true).Error
}

// --------------------------------------------------
// Checkups
// --------------------------------------------------

func (r *ClinicGormRepository) CreateCheckup(
	ctx context.Context,
	ck *models.Checkup,
) error {
	return r.db.WithContext(ctx).Create(ck).Error
}

func (r *ClinicGormRepository) GetCheckup(
	ctx context.Context,
	checkupID uint,
) (*models.Checkup, error) {

	var ck models.Checkup
	if err := r.db.WithContext(ctx).
		First(&ck, checkupID).Error; err != nil {
		return nil, notFoundAsBusiness(err)
	}

	return &ck, nil
}

func (r *ClinicGormRepository) GetCheckupForPatient(
	ctx context.Context,
	checkupID uint,
	patientID uint,
) (*models.Checkup, error) {

	var ck models.Checkup
	if err := r.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", checkupID, patientID).
		First(&ck).Error; err != nil {
		return nil, notFoundAsBusiness(err)
	}

	return &ck, nil
}

func (r *ClinicGormRepository) ListCheckups(
	ctx context.Context,
	p pagination.Params,
) ([]models.Checkup, error) {

	var cks []models.Checkup
	if err := r.db.WithContext(ctx).
		Offset(p.Skip).
		Limit(p.Take).
		Order("created_at " + p.Order).
		Find(&cks).Error; err != nil {
		return nil, err
	}

	return cks, nil
}

func (r *ClinicGormRepository) ListCheckupsForPatient(
	ctx context.Context,
	patientID uint,
	p pagination.Params,
) ([]models.Checkup, error) {

	var cks []models.Checkup
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Offset(p.Skip).
		Limit(p.Take).
		Order("created_at " + p.Order).
		Find(&cks).Error; err != nil {
		return nil, err
	}

	return cks, nil
}

func (r *ClinicGormRepository) UpdateCheckup(
	ctx context.Context,
	ck *models.Checkup,
) error {
	return r.db.WithContext(ctx).Save(ck).Error
}

func (r *ClinicGormRepository) DeleteCheckup(
	ctx context.Context,
	checkupID uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Checkup{}, checkupID).Error
}

func notFoundAsBusiness(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeCheckupNotFound)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ClinicGormRepository)(nil)
