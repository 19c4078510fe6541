package handlers

import (
	"errors"
	"log"

	"notesapi/internal/middleware"
	"notesapi/internal/services"
	"notesapi/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// getuser is the only route behind the auth gate.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/createuser", h.HandleCreateUser)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/getuser", authRequired, h.HandleGetUser)
}

// CreateUserRequest represents the request body for registration.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleCreateUser handles new user registration and issues a token.
func (h *AuthHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing createuser request body: %v", err)
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, "Invalid request body")
	}

	if msg, ok := validateStruct(req); !ok {
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, msg)
	}

	token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			log.Println("Error: 400 - Email is already in use")
			return response.Failure(c, fiber.StatusBadRequest, response.NameBadRequest, "Email is already in use")
		}
		log.Printf("Error creating user: %v", err)
		return response.Failure(c, fiber.StatusInternalServerError, response.NameInternal, "Internal server error")
	}

	log.Println("User created and token generated successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"token": token})
}

// HandleLogin authenticates a user and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, "Invalid request body")
	}

	if msg, ok := validateStruct(req); !ok {
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, msg)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Println("Error: 400 - Incorrect email or password")
			return response.Failure(c, fiber.StatusBadRequest, response.NameBadRequest, "Incorrect email or password")
		}
		log.Printf("Error logging in user: %v", err)
		return response.Failure(c, fiber.StatusInternalServerError, response.NameInternal, "Internal server error")
	}

	log.Println("User logged in and token generated successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"token": token})
}

// HandleGetUser returns the authenticated user's record, without the
// password hash.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Println("User not found")
			return response.Failure(c, fiber.StatusNotFound, response.NameNotFound, "User not found")
		}
		log.Printf("Error fetching user details: %v", err)
		return response.Failure(c, fiber.StatusInternalServerError, response.NameInternal, "Internal server error")
	}

	log.Println("User details fetched successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"user": user})
}
