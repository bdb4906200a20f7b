package handlers

import (
	"errors"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// Login accepts the OAuth2-style form body: email + password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok || pass == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return jsonErr(c, fiber.StatusUnauthorized, "bad_credentials", "Invalid email or password")
	}

	u, tok, err := h.Auth.Login(email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonErr(c, fiber.StatusUnauthorized, "bad_credentials", "Invalid email or password")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{
		"access_token": tok,
		"token_type":   "bearer",
		"user":         u,
	})
}

type registerReq struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Malformed request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Enter a valid email address")
	}
	name, ok := validate.Name(req.FullName)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Name must be 1-60 characters")
	}
	if !validate.Password(req.Password) {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Password needs 8+ characters with upper, lower and digit")
	}

	u, tok, err := h.Auth.Register(email, name, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return jsonErr(c, fiber.StatusConflict, "email_taken", "Email already registered")
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not create account")
	}

	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token": tok,
		"token_type":   "bearer",
		"user":         u,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
