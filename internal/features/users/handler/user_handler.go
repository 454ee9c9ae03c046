package handler

import (
	"errors"
	"net/http"

	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/users/domain"
	"storefront-api/internal/features/users/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for dashboard accounts.
type UserHandler struct {
	service ports.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/user/register.
// @Summary Register a dashboard account
// @Tags Users
// @Accept json
// @Produce json
// @Param user body registerPayload true "Account details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var payload registerPayload
	if err := c.BodyParser(&payload); err != nil {
		return incompleteData(c)
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" || payload.Role == "" {
		return incompleteData(c)
	}

	err := h.service.Register(c.Context(), payload.Username, payload.Email, payload.Password, payload.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Username already taken"})
		case errors.Is(err, domain.ErrEmailTaken):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Email already taken"})
		default:
			logger.Get().Error("Failed to register user", zap.Error(err))
			return internalError(c)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "User has been added"})
}

// Login handles POST /api/user/login.
// @Summary Log in to the dashboard
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body loginPayload true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var payload loginPayload
	if err := c.BodyParser(&payload); err != nil {
		return incompleteData(c)
	}
	if payload.Username == "" && payload.Password == "" {
		return incompleteData(c)
	}

	user, token, err := h.service.Login(c.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"message": "Login failed! Please check your credentials",
			})
		}
		logger.Get().Error("Failed to log in user",
			zap.String("username", payload.Username),
			zap.Error(err),
		)
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "Login successfully, redirecting you to dashboard",
		"user":        user,
		"accessToken": token,
	})
}

func incompleteData(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Incomplete data"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}
