package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds limit/skip parameters for list endpoints.
type Pagination struct {
	Limit int
	Skip  int
}

// ParsePagination reads limit and skip query params, clamping limit to
// 1..100 and skip to >= 0.
func ParsePagination(c *fiber.Ctx) Pagination {
	limit := parseInt(c.Query("limit", "20"), 20)
	skip := parseInt(c.Query("skip", "0"), 0)

	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	return Pagination{Limit: limit, Skip: skip}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
