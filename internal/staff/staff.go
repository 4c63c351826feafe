package staff

import (
	"fmt"
	"math/rand"

	"kirana-backend/internal/models"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewStaffID generates ids of the form STAFF-XXXXXX. Collisions are checked
// by the caller against the existing roster.
func NewStaffID() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("STAFF-%s", b)
}

// ValidRole reports whether the role is one of the known staff roles.
func ValidRole(r models.StaffRole) bool {
	switch r {
	case models.RoleAdmin, models.RoleManager, models.RoleCashier, models.RoleSalesperson, models.RoleInventory:
		return true
	}
	return false
}

// ValidStatus reports whether the status is one of the known staff statuses.
func ValidStatus(s models.StaffStatus) bool {
	switch s {
	case models.StaffActive, models.StaffOnLeave, models.StaffSuspended, models.StaffInactive:
		return true
	}
	return false
}

// DefaultPermissions maps a role to its default permission set. Admins and
// managers can be trimmed down afterwards via the update endpoint.
func DefaultPermissions(role models.StaffRole) models.StaffPermissions {
	switch role {
	case models.RoleAdmin:
		return models.StaffPermissions{
			ManageProducts:  true,
			ManageStaff:     true,
			ManageBilling:   true,
			ViewReports:     true,
			ManageInventory: true,
		}
	case models.RoleManager:
		return models.StaffPermissions{
			ManageProducts:  true,
			ManageBilling:   true,
			ViewReports:     true,
			ManageInventory: true,
		}
	case models.RoleCashier, models.RoleSalesperson:
		return models.StaffPermissions{ManageBilling: true}
	case models.RoleInventory:
		return models.StaffPermissions{ManageProducts: true, ManageInventory: true}
	}
	return models.StaffPermissions{}
}
