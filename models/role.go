package models

// Role values are stored as literal strings in the Employees table; Client is
// implied by the Clients table and never stored.
const (
	RoleClient     = "Client"
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RoleConsultant = "Consultant"
	RoleAccountant = "Accountant"
)

// StaffRoles is the closed set of employee roles
var StaffRoles = []string{RoleAdmin, RoleManager, RoleConsultant, RoleAccountant}

// IsStaffRole reports whether role is one of the employee roles
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is Client or one of the employee roles
func IsValidRole(role string) bool {
	return role == RoleClient || IsStaffRole(role)
}
