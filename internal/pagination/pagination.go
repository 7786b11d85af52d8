package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cliniccare/clinic-scheduler/internal/httperr"
)

const DefaultLimit = 2

type Params struct {
	Skip  int
	Take  int
	Order string // "asc" or "desc", applied to created_at
}

// FromQuery reads page / limit / sort query params with the service defaults
// (page 1, limit 2, newest first).
func FromQuery(c *gin.Context) (Params, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return Params{}, httperr.ErrBusiness("invalid_page")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		return Params{}, httperr.ErrBusiness("invalid_limit")
	}

	sort := c.DefaultQuery("sort", "desc")
	if sort != "asc" && sort != "desc" {
		return Params{}, httperr.ErrBusiness("invalid_sort")
	}

	return Params{
		Skip:  (page - 1) * limit,
		Take:  limit,
		Order: sort,
	}, nil
}
