package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/httpresp"
	"github.com/cliniccare/clinic-scheduler/internal/middleware"
	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/pagination"
	"github.com/cliniccare/clinic-scheduler/internal/storage"
	"github.com/cliniccare/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// UserHandler serves the profile CRUD for one role namespace. The routes
// package instantiates it three times (patients, moderators, admins); the
// role field scopes every query so an id can never address another namespace.
type UserHandler struct {
	db      *gorm.DB
	cache   *cache.Cache
	storage storage.ImageStorage
	audit   *audit.Dispatcher
	role    user.Role
}

func NewUserHandler(
	db *gorm.DB,
	c *cache.Cache,
	store storage.ImageStorage,
	audit *audit.Dispatcher,
	role user.Role,
) *UserHandler {
	return &UserHandler{
		db:      db,
		cache:   c,
		storage: store,
		audit:   audit,
		role:    role,
	}
}

// ======================================================
// REQUESTS (multipart forms, profile image as file part)
// ======================================================

type CreateUserRequest struct {
	FirstName   string `form:"first_name" binding:"required"`
	LastName    string `form:"last_name" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required,min=6"`
	PhoneNumber string `form:"phone_number"`
	Address     string `form:"address"`
}

type UpdateUserRequest struct {
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	Email       string `form:"email"`
	Password    string `form:"password"`
	PhoneNumber string `form:"phone_number"`
	Address     string `form:"address"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	params, err := pagination.FromQuery(c)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ctx := c.Request.Context()
	key := cache.UserListKey(h.role.String(), params.Skip, params.Take, params.Order)

	var users []models.User
	if !h.cache.Get(ctx, key, &users) {
		if err := h.db.WithContext(ctx).
			Where("role = ?", h.role.String()).
			Offset(params.Skip).
			Limit(params.Take).
			Order("created_at " + params.Order).
			Find(&users).Error; err != nil {
			httperr.Internal(c, "Something went wrong, please try again later")
			return
		}

		h.cache.Set(ctx, key, users)
	}

	httpresp.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		httperr.BadRequest(c, "Invalid User ID parameter")
		return
	}

	if !h.canAccess(actor, userID) {
		httperr.Forbidden(c, "Forbidden - You do not have permission to perform this action")
		return
	}

	ctx := c.Request.Context()
	key := cache.SingleUserKey(h.role.String(), userID)

	var u models.User
	if !h.cache.Get(ctx, key, &u) {
		fresh, err := h.findScoped(c, userID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		u = *fresh

		h.cache.Set(ctx, key, u)
	}

	httpresp.OK(c, u)
}

// ======================================================
// CREATE
// ======================================================

func (h *UserHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "User is not valid")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "The email domain does not appear to be valid")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "User already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	ctx := c.Request.Context()

	imageURL, imageKey := storage.DefaultProfileImage, ""
	if file, err := c.FormFile("profile_image"); err == nil {
		imageURL, imageKey, err = h.uploadImage(c, file)
		if err != nil {
			httperr.BadRequest(c, "Image is not correct!")
			return
		}
	}

	u := models.User{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           email,
		PasswordHash:    string(hashed),
		PhoneNumber:     req.PhoneNumber,
		Address:         req.Address,
		Role:            h.role.String(),
		ProfileImage:    imageURL,
		ProfileImageKey: imageKey,
	}

	if err := h.db.WithContext(ctx).Create(&u).Error; err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	httpresp.Created(c, u)
}

// ======================================================
// UPDATE
// ======================================================

func (h *UserHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		httperr.BadRequest(c, "Invalid User ID parameter")
		return
	}

	if !h.canAccess(actor, userID) {
		httperr.Forbidden(c, "Forbidden - You do not have permission to perform this action")
		return
	}

	u, err := h.findScoped(c, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "User is not valid")
		return
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		u.Address = req.Address
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validators.IsEmailDomainValid(email) {
			httperr.BadRequest(c, "The email domain does not appear to be valid")
			return
		}
		u.Email = email
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "Something went wrong, please try again later")
			return
		}
		u.PasswordHash = string(hashed)
	}

	ctx := c.Request.Context()

	if file, err := c.FormFile("profile_image"); err == nil {
		oldKey := u.ProfileImageKey

		url, key, err := h.uploadImage(c, file)
		if err != nil {
			httperr.BadRequest(c, "Image is not correct!")
			return
		}
		u.ProfileImage = url
		u.ProfileImageKey = key

		if oldKey != "" {
			if err := h.storage.Delete(ctx, oldKey); err != nil {
				log.Printf("failed to delete replaced profile image %q: %v", oldKey, err)
			}
		}
	}

	if err := h.db.WithContext(ctx).Save(u).Error; err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	h.cache.Invalidate(ctx, cache.SingleUserKey(h.role.String(), u.ID))

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	httpresp.OK(c, u)
}

// ======================================================
// DELETE
// ======================================================

func (h *UserHandler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		httperr.BadRequest(c, "Invalid User ID parameter")
		return
	}

	if !h.canAccess(actor, userID) {
		httperr.Forbidden(c, "Forbidden - You do not have permission to perform this action")
		return
	}

	u, err := h.findScoped(c, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ctx := c.Request.Context()

	if u.ProfileImageKey != "" {
		if err := h.storage.Delete(ctx, u.ProfileImageKey); err != nil {
			log.Printf("failed to delete profile image %q: %v", u.ProfileImageKey, err)
		}
	}

	if err := h.db.WithContext(ctx).Delete(&models.User{}, u.ID).Error; err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	h.cache.Invalidate(ctx, cache.SingleUserKey(h.role.String(), u.ID))

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================

// canAccess: admins manage every namespace; moderators manage patients and
// their own record; patients only their own record.
func (h *UserHandler) canAccess(actor middleware.Actor, targetID uint) bool {
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleModerator:
		return h.role == user.RolePatient ||
			(h.role == user.RoleModerator && actor.ID == targetID)
	case user.RolePatient:
		return h.role == user.RolePatient && actor.ID == targetID
	}
	return false
}

func (h *UserHandler) findScoped(c *gin.Context, userID uint) (*models.User, error) {
	var u models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND role = ?", userID, h.role.String()).
		First(&u).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
		}
		return nil, err
	}

	return &u, nil
}

func (h *UserHandler) uploadImage(c *gin.Context, file *multipart.FileHeader) (string, string, error) {
	f, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", "", err
	}

	return h.storage.Upload(c.Request.Context(), data)
}
