package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/dto"
	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/service"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and privilege elevation.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	grant, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		FullName:    req.FullName,
		Login:       req.Login,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTokenResponse(grant, false))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Login == "" || req.Password == "" {
		return apperrors.NewValidationError("login and password required", nil)
	}
	grant, err := h.auth.Login(c.UserContext(), req.Login, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTokenResponse(grant, false))
}

// Elevate handles POST /auth/elevate. It is gated by the admin secret header, not by a token.
func (h *AuthHandler) Elevate(c *fiber.Ctx) error {
	secret := c.Get(auth.AdminSecretHeader)
	if err := h.auth.CheckAdminSecret(secret); err != nil {
		return err
	}
	var req dto.ElevateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	level := auth.LevelAdmin
	if req.Level != nil {
		level = *req.Level
	}
	grant, err := h.auth.Elevate(c.UserContext(), secret, req.UserID, level)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTokenResponse(grant, true))
}
