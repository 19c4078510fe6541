package middleware

import (
	"log"

	"notesapi/internal/services"
	"notesapi/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthTokenHeader is the request header carrying the signed token.
const AuthTokenHeader = "auth-token"

// AuthRequired verifies the auth-token header and stores the authenticated
// user id in the request locals. It rejects before any handler runs; it
// never touches the note or user store.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get(AuthTokenHeader)
		if tokenString == "" {
			log.Println("Authentication token missing")
			return response.AuthFailure(c, "Authentication token is missing. Please log in.")
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Invalid token: %v", err)
			return response.AuthFailure(c, "Invalid token. Please log in again.")
		}

		c.Locals("user_id", claims["id"].(string))
		return c.Next()
	}
}

// UserID returns the authenticated user id injected by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
