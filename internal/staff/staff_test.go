package staff

import (
	"regexp"
	"testing"

	"kirana-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewStaffIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^STAFF-[A-Z0-9]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewStaffID()
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1, "ids should vary")
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(models.RoleAdmin))
	assert.True(t, ValidRole(models.RoleCashier))
	assert.False(t, ValidRole("janitor"))
	assert.False(t, ValidRole(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.StaffActive))
	assert.True(t, ValidStatus(models.StaffOnLeave))
	assert.False(t, ValidStatus("retired"))
}

func TestDefaultPermissions(t *testing.T) {
	admin := DefaultPermissions(models.RoleAdmin)
	assert.True(t, admin.ManageStaff)
	assert.True(t, admin.ManageProducts)

	manager := DefaultPermissions(models.RoleManager)
	assert.False(t, manager.ManageStaff)
	assert.True(t, manager.ViewReports)

	cashier := DefaultPermissions(models.RoleCashier)
	assert.True(t, cashier.ManageBilling)
	assert.False(t, cashier.ManageInventory)

	inventory := DefaultPermissions(models.RoleInventory)
	assert.True(t, inventory.ManageInventory)
	assert.False(t, inventory.ManageBilling)
}
