package models

// Car status values, stored as literal strings in the Cars table
const (
	CarStatusInStock  = "InStock"
	CarStatusSold     = "Sold"
	CarStatusInRepair = "InRepair"
)

// IsValidCarStatus reports whether status is a known vehicle status
func IsValidCarStatus(status string) bool {
	return status == CarStatusInStock || status == CarStatusSold || status == CarStatusInRepair
}

// Car represents a vehicle in the dealership inventory
type Car struct {
	ID       uint    `gorm:"column:CarID;primaryKey" json:"id"`
	Brand    string  `gorm:"column:Brand;not null" json:"brand"`
	Model    string  `gorm:"column:Model;not null" json:"model"`
	Year     int     `gorm:"column:Year;not null" json:"year"`
	Color    string  `gorm:"column:Color" json:"color"`
	Price    float64 `gorm:"column:Price;not null" json:"price"`
	Status   string  `gorm:"column:Status;not null;default:'InStock'" json:"status"`
	PhotoKey *string `gorm:"column:PhotoKey" json:"photo_key,omitempty"` // nullable, storage key for the vehicle photo
	PhotoURL *string `gorm:"-" json:"photo_url,omitempty"`               // computed field, URL for the vehicle photo
}

// TableName maps the model onto the existing Cars table
func (Car) TableName() string {
	return "Cars"
}
