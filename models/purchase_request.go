package models

import "time"

// Purchase request status values, stored as literal strings
const (
	RequestStatusUnderReview = "UnderReview"
)

// PurchaseRequest represents a client's request to buy a vehicle. Requests
// are created and deleted but never updated in place. MaxPrice is nil when
// the client left the price cap unspecified.
type PurchaseRequest struct {
	ID          uint      `gorm:"column:RequestID;primaryKey" json:"id"`
	ClientID    uint      `gorm:"column:ClientID;not null;index" json:"client_id"`
	Client      Client    `gorm:"foreignKey:ClientID" json:"client"`
	CarID       *uint     `gorm:"column:CarID;index" json:"car_id,omitempty"` // nullable, set when the request targets a specific car
	Brand       string    `gorm:"column:Brand;not null" json:"brand"`
	Model       string    `gorm:"column:Model;not null" json:"model"`
	MaxPrice    *float64  `gorm:"column:MaxPrice" json:"max_price"`
	RequestDate time.Time `gorm:"column:RequestDate;autoCreateTime" json:"request_date"`
	Status      string    `gorm:"column:Status;not null;default:'UnderReview'" json:"status"`
}

// TableName maps the model onto the existing PurchaseRequests table
func (PurchaseRequest) TableName() string {
	return "PurchaseRequests"
}
