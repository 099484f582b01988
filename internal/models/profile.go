package models

import "github.com/google/uuid"

// ShopkeeperProfile holds the public shop details a shopkeeper maintains
// separately from their account record.
type ShopkeeperProfile struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	ShopName    string    `json:"shop_name"`
	Address     string    `json:"address"`
	Pincode     string    `gorm:"index" json:"pincode"`
	City        string    `json:"city"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}
