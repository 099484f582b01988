package services

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Failures surfaced by the auth and OTP services. Handlers translate
// these into HTTP statuses via HTTPStatus.
var (
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidRole          = errors.New("invalid role")
	ErrForbiddenRole        = errors.New("admin accounts cannot be created via signup")
	ErrAlreadyRegistered    = errors.New("an account already exists for this phone")
	ErrMissingName          = errors.New("name is required")
	ErrMissingPincode       = errors.New("pincode is required")
	ErrUserNotFound         = errors.New("no account found for this phone")
	ErrShopkeeperNotFound   = errors.New("shopkeeper not found")
	ErrPendingApproval      = errors.New("account is pending admin approval")
	ErrAccountRejected      = errors.New("account has been rejected")
	ErrInvalidOrExpiredOTP  = errors.New("invalid or expired OTP")
	ErrInvalidPincodeFormat = errors.New("invalid pincode")
	ErrPincodeUnresolved    = errors.New("unable to resolve city/state from pincode")
	ErrSMSDeliveryFailed    = errors.New("failed to send OTP via SMS")
)

// RoleMismatchError is returned when the stored role for a phone differs
// from the requested one. The message names the actual role so clients
// can point users at the right login.
type RoleMismatchError struct {
	Actual string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("this phone is registered as %s", e.Actual)
}

// HTTPStatus maps a service error to its HTTP status code.
func HTTPStatus(err error) int {
	var roleMismatch *RoleMismatchError
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrShopkeeperNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidOrExpiredOTP):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrPendingApproval), errors.Is(err, ErrAccountRejected), errors.Is(err, ErrForbiddenRole):
		return fiber.StatusForbidden
	case errors.Is(err, ErrSMSDeliveryFailed):
		return fiber.StatusInternalServerError
	case errors.Is(err, ErrInvalidPhone), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrMissingName), errors.Is(err, ErrMissingPincode),
		errors.Is(err, ErrInvalidPincodeFormat), errors.Is(err, ErrPincodeUnresolved):
		return fiber.StatusBadRequest
	case errors.As(err, &roleMismatch):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
