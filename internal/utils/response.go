package utils

import (
	"github.com/gofiber/fiber/v2"
)

// DataResponse sends a success response wrapping the payload in the
// `{success, data}` envelope the Node API used.
func DataResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// ValidationErrorResponse sends a 400 with the field issues collected
// during input validation.
func ValidationErrorResponse(c *fiber.Ctx, issues []FieldIssue) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed",
		"issues":  issues,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, message)
}

// FieldIssue is one validation failure, path and message.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Issues  []FieldIssue `json:"issues,omitempty"`
}
