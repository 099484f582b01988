package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/models"
)

// AdminService manages the shopkeeper approval workflow.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService constructs an AdminService.
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListShopkeepers returns shopkeeper accounts, optionally filtered by
// approval status, newest first.
func (s *AdminService) ListShopkeepers(status string) ([]models.User, error) {
	query := s.db.Where("role = ?", models.RoleShopkeeper)
	if status != "" {
		query = query.Where("approval_status = ?", status)
	}

	var users []models.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Approve marks a shopkeeper as approved. Re-approving an already
// approved account is a no-op success.
func (s *AdminService) Approve(id uuid.UUID) (*models.User, error) {
	return s.setApproval(id, models.ApprovalApproved)
}

// Reject marks a shopkeeper as rejected. Idempotent like Approve.
func (s *AdminService) Reject(id uuid.UUID) (*models.User, error) {
	return s.setApproval(id, models.ApprovalRejected)
}

func (s *AdminService) setApproval(id uuid.UUID, status string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND role = ?", id, models.RoleShopkeeper).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrShopkeeperNotFound
		}
		return nil, err
	}

	if user.ApprovalStatus == status {
		return &user, nil
	}

	user.ApprovalStatus = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
