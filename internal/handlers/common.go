package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
	"gorm.io/gorm"
)

// getUserID extracts the Authorizer user ID from the session user stored
// in Locals by the auth middleware.
func getUserID(c *fiber.Ctx) string {
	return getUserField(c, "id")
}

// getUserField reads one string field off the session user map.
func getUserField(c *fiber.Ctx, field string) string {
	user, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return ""
	}
	value, _ := user[field].(string)
	return value
}

// isAdmin reports whether the session user carries the admin role.
func isAdmin(c *fiber.Ctx) bool {
	user, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return false
	}
	roles, ok := user["roles"].([]interface{})
	if !ok {
		return false
	}
	for _, r := range roles {
		if s, ok := r.(string); ok && s == "admin" {
			return true
		}
	}
	return false
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// queryBool parses an optional boolean query parameter, nil when absent.
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v := raw == "true" || raw == "1"
	return &v
}

// queryCSV splits a comma-separated query parameter.
func queryCSV(c *fiber.Ctx, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolvePreferMetric picks the measurement system for a response: an
// explicit `metric` query/body override wins, otherwise the stored profile
// preference, otherwise imperial.
func resolvePreferMetric(c *fiber.Ctx, db *gorm.DB, override *bool) bool {
	if override != nil {
		return *override
	}
	if q := queryBool(c, "metric"); q != nil {
		return *q
	}
	return services.PreferMetricFor(db, getUserID(c))
}

// serviceError maps service layer errors onto the response envelope.
func serviceError(c *fiber.Ctx, err error, notFoundMessage string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ValidationErrorResponse(c, verr.Issues)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	case errors.Is(err, services.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not have access to this resource")
	case errors.Is(err, services.ErrConflict):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Resource conflict")
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
}
