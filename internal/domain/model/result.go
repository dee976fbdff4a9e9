package model

import "fmt"

// Outcome tags why a facade call did or did not produce a value.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeTypeMismatch
	OutcomeBackendError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTypeMismatch:
		return "type_mismatch"
	case OutcomeBackendError:
		return "backend_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is Ok(Value) | NotFound | TypeMismatch | BackendError(Err).
// Value is only meaningful when Outcome is OutcomeOK.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

func (r Result[T]) OK() bool {
	return r.Outcome == OutcomeOK
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: OutcomeOK}
}

func NotFound[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeNotFound}
}

func TypeMismatch[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeTypeMismatch}
}

func BackendError[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeBackendError, Err: err}
}

type DeviceStatus struct {
	Device *Device `json:"device"`
	Status string  `json:"status"`
}

type SensorStatus struct {
	Sensor *Sensor `json:"sensor"`
	Status string  `json:"status"`
}
