package staff

import (
	"time"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateStaffRequest struct {
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Role             models.StaffRole   `json:"role"`
	Salary           float64            `json:"salary"`
	Address          string             `json:"address"`
	EmergencyContact string             `json:"emergency_contact"`
	Status           models.StaffStatus `json:"status"`
}

type UpdateStaffRequest struct {
	FirstName        *string                  `json:"first_name"`
	LastName         *string                  `json:"last_name"`
	Email            *string                  `json:"email"`
	Phone            *string                  `json:"phone"`
	Role             *models.StaffRole        `json:"role"`
	Status           *models.StaffStatus      `json:"status"`
	Salary           *float64                 `json:"salary"`
	Address          *string                  `json:"address"`
	EmergencyContact *string                  `json:"emergency_contact"`
	Permissions      *models.StaffPermissions `json:"permissions"`
}

// POST /api/staff
func CreateHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.FirstName == "" || body.Phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "First name and phone are required")
		}
		if !ValidRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown staff role")
		}
		if body.Status == "" {
			body.Status = models.StaffActive
		}
		if !ValidStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown staff status")
		}

		// Regenerate on the unlikely id collision.
		id := NewStaffID()
		for {
			var existing models.StaffMember
			err := store.Get(c.Context(), database.Staff, id, &existing)
			if database.IsNotFound(err) {
				break
			}
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create staff member")
			}
			id = NewStaffID()
		}

		member := models.StaffMember{
			ID:               id,
			FirstName:        body.FirstName,
			LastName:         body.LastName,
			Email:            body.Email,
			Phone:            body.Phone,
			Role:             body.Role,
			Status:           body.Status,
			JoinDate:         time.Now(),
			Salary:           body.Salary,
			Address:          body.Address,
			EmergencyContact: body.EmergencyContact,
			Permissions:      DefaultPermissions(body.Role),
		}
		if err := store.Set(c.Context(), database.Staff, member.ID, member); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create staff member")
		}

		return c.Status(fiber.StatusCreated).JSON(member)
	}
}

// GET /api/staff
func ListHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.Query{SortBy: "firstName"}
		if role := c.Query("role"); role != "" {
			query.Filter = map[string]any{"role": role}
		}

		var members []models.StaffMember
		if err := store.Find(c.Context(), database.Staff, query, &members); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load staff")
		}
		if members == nil {
			members = []models.StaffMember{}
		}
		return c.JSON(members)
	}
}

// GET /api/staff/:id
func GetHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var member models.StaffMember
		if err := store.Get(c.Context(), database.Staff, c.Params("id"), &member); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load staff member")
		}
		return c.JSON(member)
	}
}

// PUT /api/staff/:id
func UpdateHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Role != nil && !ValidRole(*body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown staff role")
		}
		if body.Status != nil && !ValidStatus(*body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown staff status")
		}

		fields := map[string]any{}
		if body.FirstName != nil {
			fields["firstName"] = *body.FirstName
		}
		if body.LastName != nil {
			fields["lastName"] = *body.LastName
		}
		if body.Email != nil {
			fields["email"] = *body.Email
		}
		if body.Phone != nil {
			fields["phone"] = *body.Phone
		}
		if body.Role != nil {
			fields["role"] = *body.Role
			// A role change resets permissions unless an explicit set is
			// sent along.
			if body.Permissions == nil {
				fields["permissions"] = DefaultPermissions(*body.Role)
			}
		}
		if body.Status != nil {
			fields["status"] = *body.Status
		}
		if body.Salary != nil {
			fields["salary"] = *body.Salary
		}
		if body.Address != nil {
			fields["address"] = *body.Address
		}
		if body.EmergencyContact != nil {
			fields["emergencyContact"] = *body.EmergencyContact
		}
		if body.Permissions != nil {
			fields["permissions"] = *body.Permissions
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No fields to update")
		}

		id := c.Params("id")
		if err := store.Update(c.Context(), database.Staff, id, fields); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update staff member")
		}

		var member models.StaffMember
		if err := store.Get(c.Context(), database.Staff, id, &member); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load staff member")
		}
		return c.JSON(member)
	}
}

// DELETE /api/staff/:id
func DeleteHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Delete(c.Context(), database.Staff, c.Params("id")); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Staff member not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete staff member")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
