package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/services"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func shopkeeperResponse(u *models.User) fiber.Map {
	return fiber.Map{
		"id":              u.ID,
		"name":            u.Name,
		"phone":           u.Phone,
		"pincode":         u.Pincode,
		"city":            u.City,
		"state":           u.State,
		"address":         u.Address,
		"approval_status": u.ApprovalStatus,
		"created_at":      u.CreatedAt,
		"updated_at":      u.UpdatedAt,
	}
}

// ListShopkeepers returns shopkeeper accounts, optionally filtered by
// ?status=pending|approved|rejected.
func (h *AdminHandler) ListShopkeepers(c *fiber.Ctx) error {
	status := c.Query("status")

	users, err := h.admin.ListShopkeepers(status)
	if err != nil {
		return err
	}

	shopkeepers := make([]fiber.Map, 0, len(users))
	for i := range users {
		shopkeepers = append(shopkeepers, shopkeeperResponse(&users[i]))
	}

	return c.JSON(fiber.Map{"success": true, "shopkeepers": shopkeepers})
}

// Approve marks a shopkeeper as approved.
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.admin.Approve(id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Shopkeeper approved",
		"shopkeeper": fiber.Map{
			"id":              user.ID,
			"phone":           user.Phone,
			"approval_status": user.ApprovalStatus,
		},
	})
}

// Reject marks a shopkeeper as rejected.
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.admin.Reject(id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Shopkeeper rejected",
		"shopkeeper": fiber.Map{
			"id":              user.ID,
			"phone":           user.Phone,
			"approval_status": user.ApprovalStatus,
		},
	})
}
