package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cliniccare/clinic-scheduler/internal/config"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/httperr"
	"github.com/cliniccare/clinic-scheduler/internal/models"
	"github.com/cliniccare/clinic-scheduler/internal/storage"
	"github.com/cliniccare/clinic-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type SignUpRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// --------- Handlers ---------

// SignUp registers a patient. Staff accounts are created by admins through
// the moderators/admins endpoints, never by self-registration.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Patient is not valid")
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
		httperr.BadRequest(c, "Patient already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	u := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashed),
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Role:         user.RolePatient.String(),
		ProfileImage: storage.DefaultProfileImage,
	}

	if err := h.db.Create(&u).Error; err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	token, err := h.generateToken(&u)
	if err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user":  u,
			"token": token,
		},
	})
}

// SignIn authenticates against one role scope: the requested role picks which
// account namespace the email is looked up in.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Email or Password is not Valid")
		return
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u models.User
	if err := h.db.
		Where("email = ? AND role = ?", email, role.String()).
		First(&u).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, strings.ToLower(role.String())+" not found!")
			return
		}
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "Sorry, "+strings.ToLower(role.String())+" Password is Incorrect")
		return
	}

	token, err := h.generateToken(&u)
	if err != nil {
		httperr.Internal(c, "Something went wrong, please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  u,
			"token": token,
		},
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
