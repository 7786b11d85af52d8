package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cliniccare/clinic-scheduler/internal/httpresp"
	"github.com/cliniccare/clinic-scheduler/internal/middleware"
	ucDailyDate "github.com/cliniccare/clinic-scheduler/internal/usecase/dailydate"
)

type DailyDatesHandler struct {
	listUC       *ucDailyDate.ListAvailable
	releaseAllUC *ucDailyDate.ReleaseAll
}

func NewDailyDatesHandler(
	listUC *ucDailyDate.ListAvailable,
	releaseAllUC *ucDailyDate.ReleaseAll,
) *DailyDatesHandler {
	return &DailyDatesHandler{
		listUC:       listUC,
		releaseAllUC: releaseAllUC,
	}
}

func (h *DailyDatesHandler) List(c *gin.Context) {
	slots, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, slots)
}

// ReleaseAll resets every slot to available, the start-of-schedule reset.
// Exposed to staff; schedulers hit the same endpoint.
func (h *DailyDatesHandler) ReleaseAll(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	if err := h.releaseAllUC.Execute(c.Request.Context(), actor.ID); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "All Dates have been released successfully")
}
