package auth

import (
	"strings"
	"time"

	"kirana-backend/internal/config"
	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func findUserByEmail(c *fiber.Ctx, store database.Store, email string) (models.User, bool, error) {
	var users []models.User
	err := store.Find(c.Context(), database.Users, database.Query{Filter: map[string]any{"email": email}}, &users)
	if err != nil {
		return models.User{}, false, err
	}
	if len(users) == 0 {
		return models.User{}, false, nil
	}
	return users[0], true, nil
}

// POST /api/auth/register-admin
//
// Bootstraps the first admin account; refused once one exists.
func RegisterAdminHandler(cfg *config.Config, store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}

		var admins []models.User
		err := store.Find(c.Context(), database.Users, database.Query{Filter: map[string]any{"role": models.RoleAdmin}}, &admins)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing admins")
		}
		if len(admins) > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin account already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}

		user := models.User{
			ID:           uuid.NewString(),
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			CreatedAt:    time.Now(),
		}
		if err := store.Set(c.Context(), database.Users, user.ID, user); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		user, found, err := findUserByEmail(c, store, body.Email)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
		}
		if !found {
			return fiber.NewError(fiber.StatusUnauthorized, "Email or password is incorrect")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email or password is incorrect")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate token")
		}

		_ = store.Update(c.Context(), database.Users, user.ID, map[string]any{"lastLogin": time.Now()})

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler(store database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var user models.User
		if err := store.Get(c.Context(), database.Users, userID, &user); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
		}

		return c.JSON(user)
	}
}
