package models

import (
	"time"

	"github.com/google/uuid"
)

// Offer statuses.
const (
	OfferActive   = "active"
	OfferInactive = "inactive"
	OfferExpired  = "expired"
)

// Discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Offer is a deal published by a shopkeeper.
type Offer struct {
	BaseModel
	ShopkeeperID  uuid.UUID  `gorm:"type:uuid;index" json:"shopkeeper_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue *float64   `json:"discount_value"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidTo       *time.Time `gorm:"index" json:"valid_to"`
	Status        string     `gorm:"index" json:"status"`
	LikesCount    int64      `json:"likes_count"`
}

// OfferLike records that a customer liked an offer, once.
type OfferLike struct {
	BaseModel
	OfferID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_offer_likes_offer_user" json:"offer_id"`
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_offer_likes_offer_user" json:"user_id"`
}
