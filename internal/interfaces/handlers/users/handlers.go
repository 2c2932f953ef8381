package users

import (
	"errors"
	"strconv"

	usersvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/user"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves every UserProfile route. Responses reproduce the Express
// API byte for byte: plain text for validation and write confirmations, raw
// row JSON for lookups, 404 for singular misses, [] for empty lists.
type Handlers struct {
	Service *usersvc.Service
}

// Register handles POST /api/users/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var in usersvc.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).SendString("First name, last name, username, and email are required")
	}
	if in.FirstName == "" || in.LastName == "" || in.Username == "" || in.Email == "" {
		return c.Status(400).SendString("First name, last name, username, and email are required")
	}
	if err := h.Service.Register(c.Context(), in); err != nil {
		return c.Status(500).SendString("Error registering user")
	}
	return c.Status(200).SendString("User registered successfully")
}

// CheckUser handles POST /api/users/check-user.
func (h *Handlers) CheckUser(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	exists, err := h.Service.Exists(c.Context(), body.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(200).JSON(fiber.Map{"exists": exists})
}

// ProfileByEmail handles GET /api/profile?email= (the userID-by-email lookup).
func (h *Handlers) ProfileByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(400).SendString("Email is required")
	}
	u, err := h.Service.ProfileByEmail(c.Context(), email)
	if errors.Is(err, usersvc.ErrUserNotFound) {
		return c.Status(404).SendString("User not found")
	}
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching the profile")
	}
	return c.Status(200).JSON(u)
}

// Profile handles GET /api/getProfile?userID=.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	userID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("userID is required")
	}
	u, err := h.Service.ProfileByID(c.Context(), userID)
	if errors.Is(err, usersvc.ErrUserNotFound) {
		return c.Status(404).SendString("User not found")
	}
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching the profile")
	}
	return c.Status(200).JSON(u)
}

// EditProfile handles PATCH /api/editProfile?userID=.
func (h *Handlers) EditProfile(c *fiber.Ctx) error {
	userID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("UserID is required")
	}
	var in usersvc.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(500).SendString("Error updating profile")
	}
	err := h.Service.UpdateProfile(c.Context(), userID, in)
	if errors.Is(err, usersvc.ErrUserNotFound) {
		return c.Status(404).SendString("User not found")
	}
	if err != nil {
		return c.Status(500).SendString("Error updating profile")
	}
	return c.Status(200).SendString("Profile updated successfully")
}

// Role handles GET /api/getUserRole?email=.
func (h *Handlers) Role(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(400).SendString("Email is required")
	}
	role, err := h.Service.Role(c.Context(), email)
	if errors.Is(err, usersvc.ErrUserNotFound) {
		return c.Status(404).SendString("No user found with the given email")
	}
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching user role")
	}
	return c.Status(200).JSON(fiber.Map{"role": role})
}

// ListAll handles GET /api/getAllUsers. Empty is 200 with [].
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	users, err := h.Service.ListAll(c.Context())
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching users")
	}
	return c.Status(200).JSON(users)
}

// HandleStatus handles PATCH /api/handleUserStatus?userID= (block/unblock).
func (h *Handlers) HandleStatus(c *fiber.Ctx) error {
	userID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("UserID is required")
	}
	var body struct {
		Status *string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == nil {
		return c.Status(400).SendString("Status is required")
	}
	err := h.Service.UpdateStatus(c.Context(), userID, *body.Status)
	if errors.Is(err, usersvc.ErrUserNotFound) {
		return c.Status(404).SendString("User not found")
	}
	if err != nil {
		return c.Status(500).SendString("Error updating user status")
	}
	label := "blocked"
	if *body.Status == "1" {
		label = "active"
	}
	return c.Status(200).SendString("User status updated to " + label + ".")
}

func queryID(c *fiber.Ctx, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
