package main

import (
	"context"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/database"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/services"
	"github.com/example/doffers/internal/utils"
)

// Seeds (or updates) the single admin account. Admin accounts are never
// created through the signup flow.
func main() {
	cfg := config.Load()

	phone := os.Getenv("ADMIN_PHONE")
	name := os.Getenv("ADMIN_NAME")
	pincode := os.Getenv("ADMIN_PINCODE")
	address := os.Getenv("ADMIN_ADDRESS")

	if phone == "" {
		log.Fatal("ADMIN_PHONE is required")
	}
	if !utils.IsValidPhone(phone) {
		log.Fatal("ADMIN_PHONE is not a valid phone number")
	}
	if pincode == "" {
		log.Fatal("ADMIN_PINCODE is required")
	}
	if name == "" {
		name = "Admin"
	}

	pincodes := services.NewPincodeService(cfg.PincodeAPIBaseURL)
	resolved, err := pincodes.Resolve(context.Background(), pincode)
	if err != nil {
		log.Fatalf("failed to resolve pincode: %v", err)
	}

	db := database.Connect(cfg.DatabaseURL)

	normalized := utils.NormalizePhone(phone)

	var user models.User
	err = db.Where("phone = ?", normalized).First(&user).Error
	switch err {
	case nil:
	case gorm.ErrRecordNotFound:
		user = models.User{Phone: normalized}
	default:
		log.Fatalf("failed to look up admin: %v", err)
	}

	user.Name = name
	user.Role = models.RoleAdmin
	user.Pincode = resolved.Pincode
	user.City = resolved.City
	user.State = resolved.State
	user.Address = address
	user.ApprovalStatus = models.ApprovalApproved

	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	log.Printf("Seeded admin: id=%s phone=%s name=%s", user.ID, user.Phone, user.Name)
}
