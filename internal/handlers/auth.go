package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/middleware"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/services"
	"github.com/example/doffers/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db   *gorm.DB
	cfg  *config.Config
	auth *services.AuthService
	otp  *services.OTPService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, auth *services.AuthService, otp *services.OTPService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, auth: auth, otp: otp}
}

// serviceError translates a service failure into a fiber error with the
// mapped status code.
func serviceError(err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return fe
	}
	return fiber.NewError(services.HTTPStatus(err), err.Error())
}

type signupRequest struct {
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Pincode string `json:"pincode"`
	Address string `json:"address"`
}

// Signup registers a new customer or shopkeeper account and sends the
// first verification code.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Role == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone and role are required")
	}

	user, err := h.auth.Signup(c.Context(), services.SignupInput{
		Phone:   req.Phone,
		Role:    req.Role,
		Name:    req.Name,
		Pincode: req.Pincode,
		Address: req.Address,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "OTP sent",
		"user": fiber.Map{
			"id":              user.ID,
			"phone":           user.Phone,
			"role":            user.Role,
			"approval_status": user.ApprovalStatus,
		},
	})
}

type sendOtpRequest struct {
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// SendOtp issues a login code for an existing account.
func (h *AuthHandler) SendOtp(c *fiber.Ctx) error {
	var req sendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Role == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone and role are required")
	}

	if err := h.auth.SendCode(c.Context(), req.Phone, req.Role); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "OTP sent"})
}

type verifyOtpRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
	Role  string `json:"role"`
}

// VerifyOtp validates a submitted code and returns a session token.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req verifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.OTP == "" || req.Role == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone, otp and role are required")
	}

	user, err := h.auth.Verify(req.Phone, req.Role, req.OTP)
	if err != nil {
		return serviceError(err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Phone, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", current.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":              user.ID,
			"name":            user.Name,
			"phone":           user.Phone,
			"role":            user.Role,
			"pincode":         user.Pincode,
			"city":            user.City,
			"state":           user.State,
			"address":         user.Address,
			"approval_status": user.ApprovalStatus,
			"created_at":      user.CreatedAt,
		},
	})
}

type updateMeRequest struct {
	Name    string `json:"name"`
	Pincode string `json:"pincode"`
	Address string `json:"address"`
}

// UpdateMe updates profile fields on the authenticated account. A new
// pincode is re-resolved to city/state before being stored.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Pincode != "" {
		resolved, err := h.auth.ResolvePincode(c.Context(), req.Pincode)
		if err != nil {
			return serviceError(err)
		}
		updates["pincode"] = resolved.Pincode
		updates["city"] = resolved.City
		updates["state"] = resolved.State
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", current.ID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

// DevLastOtp exposes the latest code for a phone. Only wired up outside
// production.
func (h *AuthHandler) DevLastOtp(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone query is required")
	}

	record, err := h.otp.PeekLatest(utils.NormalizePhone(phone))
	if err != nil {
		return err
	}
	if record == nil {
		return fiber.NewError(fiber.StatusNotFound, "no OTP found for this phone")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"otp":        record.Code,
		"expires_at": record.ExpiresAt,
	})
}
