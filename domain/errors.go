package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the stock decision flow. Callers classify with
// errors.Is; every concrete error wraps exactly one of these.
var (
	ErrStartup       = errors.New("startup error")
	ErrConfiguration = errors.New("configuration error")
	ErrModel         = errors.New("model error")
	ErrData          = errors.New("data error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
)

var (
	ErrArtifactMissing = fmt.Errorf("%w: required artifact missing", ErrStartup)
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrModel)
	ErrUnknownCluster  = fmt.Errorf("%w: cluster id not in segment table", ErrData)
)

// ErrorKind returns the top-level kind of err, or "" when err is not one of ours.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStartup):
		return "startup"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrModel):
		return "model"
	case errors.Is(err, ErrData):
		return "data"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return ""
	}
}
