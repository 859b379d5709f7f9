package models

// Employee represents a staff account. Role is one of the StaffRoles values.
type Employee struct {
	ID           uint   `gorm:"column:EmployeeID;primaryKey" json:"id"`
	FirstName    string `gorm:"column:FirstName;not null" json:"first_name"`
	LastName     string `gorm:"column:LastName;not null" json:"last_name"`
	Position     string `gorm:"column:Position;not null" json:"position"`
	Phone        string `gorm:"column:Phone;not null" json:"phone"`
	Email        string `gorm:"column:Email" json:"email"`
	Username     string `gorm:"column:Username;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:PasswordHash;not null" json:"-"`
	Role         string `gorm:"column:Role;not null" json:"role"`
}

// TableName maps the model onto the existing Employees table
func (Employee) TableName() string {
	return "Employees"
}
