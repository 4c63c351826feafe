package models

import "time"

type StaffRole string

const (
	RoleAdmin       StaffRole = "admin"
	RoleManager     StaffRole = "manager"
	RoleCashier     StaffRole = "cashier"
	RoleSalesperson StaffRole = "salesperson"
	RoleInventory   StaffRole = "inventory"
)

type StaffStatus string

const (
	StaffActive    StaffStatus = "active"
	StaffOnLeave   StaffStatus = "on_leave"
	StaffSuspended StaffStatus = "suspended"
	StaffInactive  StaffStatus = "inactive"
)

type StaffPermissions struct {
	ManageProducts  bool `bson:"canManageProducts" json:"can_manage_products"`
	ManageStaff     bool `bson:"canManageStaff" json:"can_manage_staff"`
	ManageBilling   bool `bson:"canManageBilling" json:"can_manage_billing"`
	ViewReports     bool `bson:"canViewReports" json:"can_view_reports"`
	ManageInventory bool `bson:"canManageInventory" json:"can_manage_inventory"`
}

type StaffMember struct {
	ID               string           `bson:"_id" json:"id"`
	FirstName        string           `bson:"firstName" json:"first_name"`
	LastName         string           `bson:"lastName" json:"last_name"`
	Email            string           `bson:"email" json:"email"`
	Phone            string           `bson:"phone" json:"phone"`
	Role             StaffRole        `bson:"role" json:"role"`
	Status           StaffStatus      `bson:"status" json:"status"`
	JoinDate         time.Time        `bson:"joinDate" json:"join_date"`
	Salary           float64          `bson:"salary" json:"salary"`
	Address          string           `bson:"address,omitempty" json:"address,omitempty"`
	EmergencyContact string           `bson:"emergencyContact,omitempty" json:"emergency_contact,omitempty"`
	Permissions      StaffPermissions `bson:"permissions" json:"permissions"`
}
