package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/cliniccare/clinic-scheduler/internal/domain/checkup"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/httpresp"
	"github.com/cliniccare/clinic-scheduler/internal/middleware"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
	ucCheckup "github.com/cliniccare/clinic-scheduler/internal/usecase/checkup"
)

// ======================================================
// HANDLER
// ======================================================

type CheckupHandler struct {
	createUC *ucCheckup.CreateCheckup
	updateUC *ucCheckup.UpdateCheckup
	deleteUC *ucCheckup.DeleteCheckup
	getUC    *ucCheckup.GetCheckup
	listUC   *ucCheckup.ListCheckups
}

func NewCheckupHandler(
	createUC *ucCheckup.CreateCheckup,
	updateUC *ucCheckup.UpdateCheckup,
	deleteUC *ucCheckup.DeleteCheckup,
	getUC *ucCheckup.GetCheckup,
	listUC *ucCheckup.ListCheckups,
) *CheckupHandler {
	return &CheckupHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCheckupRequest struct {
	Date string `json:"date" binding:"required"`
	Type string `json:"type"`
}

type UpdateCheckupRequest struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

// ======================================================
// CREATE
// ======================================================

func (h *CheckupHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req CreateCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Checkup is not Valid, Please try again!")
		return
	}

	ckType := domain.DefaultType()
	if req.Type != "" {
		parsed, err := domain.ParseType(req.Type)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		ckType = parsed
	}

	ck, err := h.createUC.Execute(c.Request.Context(), actor.ID, ucCheckup.CreateCheckupInput{
		Date: req.Date,
		Type: ckType,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, ck)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *CheckupHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	params, err := pagination.FromQuery(c)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	cks, err := h.listUC.Execute(c.Request.Context(), actor.ID, actor.Role, params)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cks)
}

func (h *CheckupHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	checkupID, err := parseIDParam(c, "checkupId")
	if err != nil {
		httperr.BadRequest(c, "Invalid Checkup ID parameter")
		return
	}

	ck, err := h.getUC.Execute(c.Request.Context(), actor.ID, actor.Role, checkupID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ck)
}

// ======================================================
// UPDATE
// ======================================================

func (h *CheckupHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	checkupID, err := parseIDParam(c, "checkupId")
	if err != nil {
		httperr.BadRequest(c, "Invalid Checkup ID parameter")
		return
	}

	var req UpdateCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Checkup is not Valid, Please try again!")
		return
	}

	ck, err := h.updateUC.Execute(c.Request.Context(), actor.ID, checkupID, ucCheckup.UpdateCheckupInput{
		Date: req.Date,
		Type: req.Type,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, ck)
}

// ======================================================
// DELETE
// ======================================================

func (h *CheckupHandler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	checkupID, err := parseIDParam(c, "checkupId")
	if err != nil {
		httperr.BadRequest(c, "Invalid Checkup ID parameter")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor.ID, actor.Role, checkupID); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, httperr.ErrBusiness("invalid_id")
	}
	return uint(id), nil
}
