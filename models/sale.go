package models

import "time"

// Sale represents a completed vehicle sale. Sales are immutable: there is no
// update or delete operation for them anywhere in the system.
type Sale struct {
	ID         uint      `gorm:"column:SaleID;primaryKey" json:"id"`
	CarID      uint      `gorm:"column:CarID;not null;index" json:"car_id"`
	Car        Car       `gorm:"foreignKey:CarID" json:"car"`
	ClientID   uint      `gorm:"column:ClientID;not null;index" json:"client_id"`
	Client     Client    `gorm:"foreignKey:ClientID" json:"client"`
	EmployeeID uint      `gorm:"column:EmployeeID;not null;index" json:"employee_id"` // the seller
	Employee   Employee  `gorm:"foreignKey:EmployeeID" json:"employee"`
	SaleDate   time.Time `gorm:"column:SaleDate;autoCreateTime" json:"sale_date"`
	SalePrice  float64   `gorm:"column:SalePrice;not null" json:"sale_price"`
}

// TableName maps the model onto the existing Sales table
func (Sale) TableName() string {
	return "Sales"
}
