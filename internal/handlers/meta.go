package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/doffers/internal/services"
)

// MetaHandler serves unauthenticated lookups.
type MetaHandler struct {
	pincodes *services.PincodeService
}

// NewMetaHandler constructs MetaHandler.
func NewMetaHandler(pincodes *services.PincodeService) *MetaHandler {
	return &MetaHandler{pincodes: pincodes}
}

// PincodeLookup resolves a pincode to city and state.
func (h *MetaHandler) PincodeLookup(c *fiber.Ctx) error {
	result, err := h.pincodes.Resolve(c.Context(), c.Params("pincode"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"pincode": result.Pincode,
		"city":    result.City,
		"state":   result.State,
	})
}
