package ports

import "errors"

// ErrEntityNotFound is matched (errors.Is) by hub errors for unknown entity ids.
var ErrEntityNotFound = errors.New("entity not found")
