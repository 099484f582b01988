package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/middleware"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/utils"
)

// CustomerHandler serves offer browsing for customers.
type CustomerHandler struct {
	db *gorm.DB
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ListOffers returns live offers near the customer. Offers are scoped to
// approved shopkeepers in the requested pincode; with no explicit
// ?pincode the customer's own pincode is used. Expired offers
// (valid_to in the past) are filtered out.
func (h *CustomerHandler) ListOffers(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	page := utils.ParsePagination(c)

	pincode := c.Query("pincode")
	if pincode == "" {
		var me models.User
		if err := h.db.Select("pincode").First(&me, "id = ?", user.ID).Error; err == nil {
			pincode = me.Pincode
		}
	}

	status := c.Query("status")
	if status == "" {
		status = models.OfferActive
	}

	query := h.db.Model(&models.Offer{}).Where("status = ?", status)

	if pincode != "" {
		var ids []uuid.UUID
		err := h.db.Model(&models.User{}).
			Where("role = ? AND approval_status = ? AND pincode = ?",
				models.RoleShopkeeper, models.ApprovalApproved, pincode).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}

		var profileIDs []uuid.UUID
		if err := h.db.Model(&models.ShopkeeperProfile{}).
			Where("pincode = ?", pincode).
			Pluck("user_id", &profileIDs).Error; err != nil {
			return err
		}

		seen := make(map[uuid.UUID]bool, len(ids)+len(profileIDs))
		merged := make([]uuid.UUID, 0, len(ids)+len(profileIDs))
		for _, id := range append(ids, profileIDs...) {
			if !seen[id] {
				seen[id] = true
				merged = append(merged, id)
			}
		}

		if len(merged) == 0 {
			return c.JSON(fiber.Map{"success": true, "offers": []fiber.Map{}})
		}
		query = query.Where("shopkeeper_id IN ?", merged)
	}

	query = query.Where("valid_to IS NULL OR valid_to >= ?", time.Now())

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

// LikeOffer records a like for the authenticated customer. Liking an
// already-liked offer is a no-op success.
func (h *CustomerHandler) LikeOffer(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid offer id")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", offerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	var existing models.OfferLike
	err = h.db.Where("offer_id = ? AND user_id = ?", offerID, user.ID).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "likes_count": offer.LikesCount})
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	var likesCount int64
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.OfferLike{OfferID: offerID, UserID: user.ID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Offer{}).Where("id = ?", offerID).
			Update("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Offer{}).Select("likes_count").
			Where("id = ?", offerID).Scan(&likesCount).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "likes_count": likesCount})
}

// UnlikeOffer removes the customer's like if present.
func (h *CustomerHandler) UnlikeOffer(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid offer id")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("offer_id = ? AND user_id = ?", offerID, user.ID).Delete(&models.OfferLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Offer{}).
			Where("id = ? AND likes_count > 0", offerID).
			Update("likes_count", gorm.Expr("likes_count - 1")).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
