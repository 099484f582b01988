package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/doffers/internal/models"
)

func seedShopkeeper(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()

	user := models.User{
		Name:  "Shop " + phone,
		Phone: phone,
		Role:  models.RoleShopkeeper,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestApproveShopkeeper(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	user := seedShopkeeper(t, db, "9000000001")

	got, err := svc.Approve(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)

	// Idempotent: approving again is a no-op success.
	got, err = svc.Approve(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)
}

func TestRejectShopkeeper(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	user := seedShopkeeper(t, db, "9000000002")

	got, err := svc.Reject(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, got.ApprovalStatus)
}

func TestApproveRequiresShopkeeperRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	customer := models.User{Name: "Jane", Phone: "9000000003", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	_, err := svc.Approve(customer.ID)
	assert.ErrorIs(t, err, ErrShopkeeperNotFound)

	_, err = svc.Approve(uuid.New())
	assert.ErrorIs(t, err, ErrShopkeeperNotFound)
}

func TestListShopkeepersFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	a := seedShopkeeper(t, db, "9000000004")
	seedShopkeeper(t, db, "9000000005")
	_, err := svc.Approve(a.ID)
	require.NoError(t, err)

	all, err := svc.ListShopkeepers("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListShopkeepers(models.ApprovalPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "9000000005", pending[0].Phone)

	approved, err := svc.ListShopkeepers(models.ApprovalApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "9000000004", approved[0].Phone)
}
