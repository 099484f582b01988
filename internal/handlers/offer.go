package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/middleware"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/utils"
)

// OfferHandler manages shopkeeper offer CRUD.
type OfferHandler struct {
	db *gorm.DB
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(db *gorm.DB) *OfferHandler {
	return &OfferHandler{db: db}
}

func offerResponse(o *models.Offer) fiber.Map {
	return fiber.Map{
		"id":             o.ID,
		"shopkeeper_id":  o.ShopkeeperID,
		"title":          o.Title,
		"description":    o.Description,
		"discount_type":  o.DiscountType,
		"discount_value": o.DiscountValue,
		"valid_from":     o.ValidFrom,
		"valid_to":       o.ValidTo,
		"status":         o.Status,
		"likes_count":    o.LikesCount,
		"created_at":     o.CreatedAt,
		"updated_at":     o.UpdatedAt,
	}
}

// canAccessOffer allows the owning shopkeeper and admins through.
func canAccessOffer(offer *models.Offer, user middleware.AuthUser) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return offer.ShopkeeperID == user.ID
}

type offerRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	DiscountType  *string    `json:"discount_type"`
	DiscountValue *float64   `json:"discount_value"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to"`
	Status        *string    `json:"status"`
}

// Create publishes a new offer owned by the authenticated shopkeeper.
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}

	offer := models.Offer{
		ShopkeeperID: user.ID,
		Title:        strings.TrimSpace(*req.Title),
		DiscountType: models.DiscountPercentage,
		Status:       models.OfferActive,
	}
	if req.Description != nil {
		offer.Description = strings.TrimSpace(*req.Description)
	}
	if req.DiscountType != nil {
		offer.DiscountType = *req.DiscountType
	}
	offer.DiscountValue = req.DiscountValue
	offer.ValidFrom = req.ValidFrom
	offer.ValidTo = req.ValidTo

	if err := h.db.Create(&offer).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "offer": offerResponse(&offer)})
}

// List returns the shopkeeper's own offers; admins see everything.
func (h *OfferHandler) List(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	page := utils.ParsePagination(c)

	query := h.db.Model(&models.Offer{})
	if user.Role != models.RoleAdmin {
		query = query.Where("shopkeeper_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var offers []models.Offer
	if err := query.Order("created_at desc").Offset(page.Skip).Limit(page.Limit).Find(&offers).Error; err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(offers))
	for i := range offers {
		out = append(out, offerResponse(&offers[i]))
	}

	return c.JSON(fiber.Map{"success": true, "offers": out})
}

func (h *OfferHandler) loadOwned(c *fiber.Ctx) (*models.Offer, error) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid offer id")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return nil, err
	}

	if !canAccessOffer(&offer, user) {
		return nil, fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	return &offer, nil
}

// Get returns a single owned offer.
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	offer, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "offer": offerResponse(offer)})
}

// Update applies partial changes to an owned offer.
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	offer, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title != nil {
		offer.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		offer.Description = strings.TrimSpace(*req.Description)
	}
	if req.DiscountType != nil {
		offer.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		offer.DiscountValue = req.DiscountValue
	}
	if req.ValidFrom != nil {
		offer.ValidFrom = req.ValidFrom
	}
	if req.ValidTo != nil {
		offer.ValidTo = req.ValidTo
	}
	if req.Status != nil {
		offer.Status = *req.Status
	}

	if err := h.db.Save(offer).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "offer": offerResponse(offer)})
}

// Delete removes an owned offer and its likes.
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	offer, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&models.OfferLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(offer).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Offer deleted"})
}
