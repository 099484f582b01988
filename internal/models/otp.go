package models

import "time"

// OneTimeCode is a short-lived numeric credential sent to a phone number.
// At most one live code exists per phone: issuing a new code deletes all
// prior codes, and a successful verification consumes the record.
type OneTimeCode struct {
	BaseModel
	Phone     string    `gorm:"index" json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}
