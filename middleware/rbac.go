package middleware

import "github.com/autotradecenter/autotrade-api/models"

// Action names a user-triggered operation gated by the authorization table
type Action string

const (
	ActionCarsViewAll       Action = "cars:view_all"
	ActionCarsViewAvailable Action = "cars:view_available"
	ActionCarsManage        Action = "cars:manage"
	ActionCarsDelete        Action = "cars:delete"
	ActionCarsSell          Action = "cars:sell"
	ActionClientsView       Action = "clients:view"
	ActionClientsDelete     Action = "clients:delete"
	ActionEmployeesView     Action = "employees:view"
	ActionEmployeesDelete   Action = "employees:delete"
	ActionSalesViewAll      Action = "sales:view_all"
	ActionSalesViewOwn      Action = "sales:view_own"
	ActionRequestsView      Action = "requests:view"
	ActionRequestsCreate    Action = "requests:create"
	ActionRequestsDelete    Action = "requests:delete"
	ActionPhotosManage      Action = "photos:manage"
)

var (
	allStaff = []string{models.RoleAdmin, models.RoleManager, models.RoleConsultant, models.RoleAccountant}
	allRoles = append([]string{models.RoleClient}, allStaff...)
)

// capabilities is the static authorization table: each action maps to the
// closed set of roles allowed to invoke it. Behavior branches on this table,
// never on a type hierarchy.
var capabilities = map[Action][]string{
	ActionCarsViewAll:       allStaff,
	ActionCarsViewAvailable: allRoles,
	ActionCarsManage:        allStaff,
	ActionCarsDelete:        {models.RoleAdmin, models.RoleManager},
	ActionCarsSell:          allStaff,
	ActionClientsView:       allStaff,
	ActionClientsDelete:     {models.RoleAdmin},
	ActionEmployeesView:     allStaff,
	ActionEmployeesDelete:   {models.RoleAdmin},
	ActionSalesViewAll:      allStaff,
	ActionSalesViewOwn:      {models.RoleClient},
	ActionRequestsView:      allRoles, // clients see only their own, enforced in the controller
	ActionRequestsCreate:    allRoles,
	ActionRequestsDelete:    allStaff,
	ActionPhotosManage:      allStaff,
}

// RoleAllowed reports whether the role may invoke the action
func RoleAllowed(role string, action Action) bool {
	for _, allowed := range capabilities[action] {
		if allowed == role {
			return true
		}
	}
	return false
}
