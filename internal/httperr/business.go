package httperr

import "errors"

// BusinessError carries a machine-readable code for a domain-rule failure.
// Domain code returns these; only the handler layer translates them to HTTP.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Codes shared across layers.
const (
	CodeDateNotAvailable = "date_not_available"
	CodeSlotNotFound     = "slot_not_found"
	CodeCheckupNotFound  = "checkup_not_found"
	CodeUserNotFound     = "user_not_found"
)
