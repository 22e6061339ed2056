package services

import (
	"errors"
	"fmt"

	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ValidationError aggregates input validation failures for a request.
type ValidationError struct {
	Issues []utils.FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d issues)", len(e.Issues))
}
