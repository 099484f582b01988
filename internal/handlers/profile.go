package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/middleware"
	"github.com/example/doffers/internal/models"
)

// ProfileHandler manages shopkeeper shop profiles.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func profileResponse(p *models.ShopkeeperProfile) fiber.Map {
	return fiber.Map{
		"id":          p.ID,
		"user_id":     p.UserID,
		"shop_name":   p.ShopName,
		"address":     p.Address,
		"pincode":     p.Pincode,
		"city":        p.City,
		"category":    p.Category,
		"description": p.Description,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

// GetProfile returns the shop profile for the authenticated shopkeeper.
// Admins may inspect any profile via ?user_id.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	userID := current.ID
	if current.Role == models.RoleAdmin {
		if q := c.Query("user_id"); q != "" {
			parsed, err := uuid.Parse(q)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
			}
			userID = parsed
		}
	}

	var profile models.ShopkeeperProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "profile": profileResponse(&profile)})
}

type upsertProfileRequest struct {
	ShopName    string  `json:"shop_name"`
	Address     *string `json:"address"`
	Pincode     *string `json:"pincode"`
	City        *string `json:"city"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

// UpsertProfile creates or updates the shop profile.
func (h *ProfileHandler) UpsertProfile(c *fiber.Ctx) error {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.ShopName) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "shop_name is required")
	}

	var profile models.ShopkeeperProfile
	err := h.db.Where("user_id = ?", current.ID).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	profile.UserID = current.ID
	profile.ShopName = strings.TrimSpace(req.ShopName)
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.Pincode != nil {
		profile.Pincode = strings.TrimSpace(*req.Pincode)
	}
	if req.City != nil {
		profile.City = strings.TrimSpace(*req.City)
	}
	if req.Category != nil {
		profile.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		profile.Description = strings.TrimSpace(*req.Description)
	}

	if err := h.db.Save(&profile).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "profile": profileResponse(&profile)})
}
