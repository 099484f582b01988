package models

import "gorm.io/gorm"

// Roles a phone number can be bound to. A phone keeps its role for the
// lifetime of the account; changes require operator intervention.
const (
	RoleCustomer   = "customer"
	RoleShopkeeper = "shopkeeper"
	RoleAdmin      = "admin"
)

// Approval states for shopkeeper accounts. Customers and admins are
// effectively always approved.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Roles enumerates every valid account role.
var Roles = []string{RoleCustomer, RoleShopkeeper, RoleAdmin}

// IsValidRole reports whether role is a member of the fixed role set.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account keyed by phone number.
type User struct {
	BaseModel
	Name           string `json:"name"`
	Phone          string `gorm:"uniqueIndex" json:"phone"`
	Role           string `gorm:"index:idx_users_role_approval" json:"role"`
	Pincode        string `json:"pincode"`
	City           string `json:"city"`
	State          string `json:"state"`
	Address        string `json:"address"`
	ApprovalStatus string `gorm:"index:idx_users_role_approval" json:"approval_status"`
}

// BeforeCreate defaults the approval status: shopkeepers start pending,
// every other role starts approved.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if u.ApprovalStatus == "" {
		if u.Role == RoleShopkeeper {
			u.ApprovalStatus = ApprovalPending
		} else {
			u.ApprovalStatus = ApprovalApproved
		}
	}
	return nil
}
