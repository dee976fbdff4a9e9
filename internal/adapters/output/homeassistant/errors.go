package homeassistant

import (
	"errors"
	"fmt"
	"strings"

	"smarthome-bridge/internal/ports"
)

var (
	// ErrNotConfigured is returned by every call when the URL or token is missing.
	ErrNotConfigured = errors.New("homeassistant: not configured")

	// ErrEntityNotFound is matched by APIErrors for a 404 on a state query.
	ErrEntityNotFound = ports.ErrEntityNotFound
)

// APIError is a non-2xx answer from the hub.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("homeassistant: %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrEntityNotFound && e.StatusCode == 404 && strings.HasPrefix(e.Path, "/states/")
}
