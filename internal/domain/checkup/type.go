package checkup

import "github.com/cliniccare/clinic-scheduler/internal/httperr"

// ===============================
// Checkup Type
// ===============================

type Type string

const (
	TypeExamination  Type = "EXAMINATION"
	TypeConsultation Type = "CONSULTATION"
)

func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeExamination:
		return TypeExamination, nil
	case TypeConsultation:
		return TypeConsultation, nil
	default:
		return "", httperr.ErrBusiness("invalid_checkup_type")
	}
}

func DefaultType() Type {
	return TypeExamination
}
