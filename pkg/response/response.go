// Package response implements the wire envelope shared with the service's
// existing clients: every body carries statusCode, status and data, and
// failures add an error object.
package response

import "github.com/gofiber/fiber/v2"

// Error names used across the API.
const (
	NameValidation = "ValidationError"
	NameBadRequest = "Bad Request"
	NameAuth       = "AuthenticationError"
	NameNotFound   = "Not Found"
	NameInternal   = "Internal Server Error"
)

// ErrorBody describes a failure in the envelope.
type ErrorBody struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Envelope is the top-level response shape.
type Envelope struct {
	StatusCode int        `json:"statusCode"`
	Status     string     `json:"status"`
	Data       fiber.Map  `json:"data"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// Success writes a success envelope with the given records.
func Success(c *fiber.Ctx, statusCode int, records fiber.Map) error {
	return c.Status(statusCode).JSON(Envelope{
		StatusCode: statusCode,
		Status:     "success",
		Data:       fiber.Map{"records": records},
	})
}

// Failure writes a failure envelope with an error object.
func Failure(c *fiber.Ctx, statusCode int, name, message string) error {
	return c.Status(statusCode).JSON(Envelope{
		StatusCode: statusCode,
		Status:     "failure",
		Data:       fiber.Map{},
		Error: &ErrorBody{
			Code:    statusCode,
			Name:    name,
			Message: message,
		},
	})
}

// AuthFailure writes the 401 envelope. Clients expect the redirectUrl field
// in auth failures, so it is kept even though it is always empty.
func AuthFailure(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
		StatusCode: fiber.StatusUnauthorized,
		Status:     "failure",
		Data:       fiber.Map{"redirectUrl": ""},
		Error: &ErrorBody{
			Code:    fiber.StatusUnauthorized,
			Name:    NameAuth,
			Message: message,
		},
	})
}
