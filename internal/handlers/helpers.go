package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cliniccare/clinic-scheduler/internal/httperr"
)

// businessMessages maps domain error codes onto the user-facing wording.
var businessMessages = map[string]string{
	httperr.CodeDateNotAvailable: "Your Checkup Date is not available!",
	httperr.CodeSlotNotFound:     "Your Checkup Date is not available!",
	"invalid_checkup_type":       "Checkup is not Valid, Please try again!",
	"invalid_role":               "Role is not Valid",
	"invalid_page":               "Page and Limit should be numbers",
	"invalid_limit":              "Page and Limit should be numbers",
	"invalid_sort":               "Sort parameter should be 'asc' or 'desc'",
}

// writeDomainError is the single translation point from typed domain errors
// to transport responses. Anything unrecognized becomes a generic 500 so
// store internals never leak to clients.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeCheckupNotFound):
		httperr.NotFound(c, "Checkup not found")
	case httperr.IsBusiness(err, httperr.CodeUserNotFound):
		httperr.NotFound(c, "User not found")
	default:
		var be httperr.BusinessError
		if errors.As(err, &be) {
			msg, ok := businessMessages[be.Code]
			if !ok {
				msg = "Request is not valid"
			}
			httperr.BadRequest(c, msg)
			return
		}
		httperr.Internal(c, "Something went wrong, please try again later")
	}
}
