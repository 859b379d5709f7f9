package models

// Client represents a dealership customer account
type Client struct {
	ID           uint   `gorm:"column:ClientID;primaryKey" json:"id"`
	FirstName    string `gorm:"column:FirstName;not null" json:"first_name"`
	LastName     string `gorm:"column:LastName;not null" json:"last_name"`
	Phone        string `gorm:"column:Phone;not null" json:"phone"`
	Email        string `gorm:"column:Email" json:"email"` // optional
	Username     string `gorm:"column:Username;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:PasswordHash;not null" json:"-"`
}

// TableName maps the model onto the existing Clients table
func (Client) TableName() string {
	return "Clients"
}
