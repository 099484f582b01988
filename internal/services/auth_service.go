package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/utils"
)

// AuthService is the state machine behind signup, send-code and
// verify-code. A phone number is bound to exactly one role for the
// lifetime of its account; the account is created at signup time
// (pending for shopkeepers, approved otherwise) and an OTP merely
// authenticates it afterwards.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	otp      *OTPService
	pincodes *PincodeService
	sms      SMSSender
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, cfg *config.Config, otp *OTPService, pincodes *PincodeService, sms SMSSender) *AuthService {
	return &AuthService{db: db, cfg: cfg, otp: otp, pincodes: pincodes, sms: sms}
}

// SignupInput carries the profile fields supplied at registration.
type SignupInput struct {
	Phone   string
	Role    string
	Name    string
	Pincode string
	Address string
}

// Signup registers a new account and sends it a verification code.
// Admin accounts cannot be created this way; they are provisioned
// out-of-band (see cmd/seedadmin).
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	phone, err := s.validatePhoneRole(in.Phone, in.Role)
	if err != nil {
		return nil, err
	}
	if in.Role == models.RoleAdmin {
		return nil, ErrForbiddenRole
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(in.Pincode) == "" {
		return nil, ErrMissingPincode
	}

	// One phone, one account, ever - regardless of the requested role.
	var existing models.User
	if err := s.db.Where("phone = ?", phone).First(&existing).Error; err == nil {
		return nil, ErrAlreadyRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	resolved, err := s.pincodes.Resolve(ctx, in.Pincode)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:    strings.TrimSpace(in.Name),
		Phone:   phone,
		Role:    in.Role,
		Pincode: resolved.Pincode,
		City:    resolved.City,
		State:   resolved.State,
		Address: strings.TrimSpace(in.Address),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.issueAndDeliver(ctx, phone); err != nil {
		return nil, err
	}

	return &user, nil
}

// SendCode issues a fresh OTP for an existing account. Login requires
// prior signup.
func (s *AuthService) SendCode(ctx context.Context, rawPhone, role string) error {
	phone, err := s.validatePhoneRole(rawPhone, role)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrUserNotFound
		}
		return err
	}

	if user.Role != role {
		return &RoleMismatchError{Actual: user.Role}
	}

	return s.issueAndDeliver(ctx, phone)
}

// Verify authenticates a submitted code and returns the account for
// session-token issuance. Shopkeepers must be approved before they can
// log in; pending and rejected accounts are blocked server-side. The
// master code bypasses the OTP store entirely but never bypasses the
// account, role or approval checks.
func (s *AuthService) Verify(rawPhone, role, code string) (*models.User, error) {
	phone, err := s.validatePhoneRole(rawPhone, role)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != role {
		return nil, &RoleMismatchError{Actual: user.Role}
	}

	if user.Role == models.RoleShopkeeper {
		switch user.ApprovalStatus {
		case models.ApprovalApproved:
		case models.ApprovalRejected:
			return nil, ErrAccountRejected
		default:
			return nil, ErrPendingApproval
		}
	}

	if s.cfg.MasterOTP != "" && utils.ConstantTimeEquals(code, s.cfg.MasterOTP) {
		return &user, nil
	}

	if err := s.otp.Consume(phone, code); err != nil {
		return nil, err
	}

	return &user, nil
}

// ResolvePincode exposes the pincode resolver for profile updates.
func (s *AuthService) ResolvePincode(ctx context.Context, pincode string) (*PincodeResult, error) {
	return s.pincodes.Resolve(ctx, pincode)
}

func (s *AuthService) validatePhoneRole(rawPhone, role string) (string, error) {
	if !utils.IsValidPhone(rawPhone) {
		return "", ErrInvalidPhone
	}
	if !models.IsValidRole(role) {
		return "", ErrInvalidRole
	}
	return utils.NormalizePhone(rawPhone), nil
}

func (s *AuthService) issueAndDeliver(ctx context.Context, phone string) error {
	code, err := s.otp.Issue(phone)
	if err != nil {
		return err
	}

	if !s.cfg.SendOTPViaSMS {
		return nil
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.",
		code, int(s.cfg.OTPExpiry.Minutes()))
	return s.sms.Send(ctx, phone, message)
}
