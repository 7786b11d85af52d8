package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/httpresp"
	"github.com/cliniccare/clinic-scheduler/internal/middleware"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var u models.User
	if err := h.db.First(&u, actor.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "User not found")
			return
		}
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	httpresp.OK(c, u)
}
