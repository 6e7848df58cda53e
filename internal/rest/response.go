package rest

import (
	"context"
	"errors"
	"net/http"

	"smartStock/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrModel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) ResponseError {
	return ResponseError{Message: err.Error(), Kind: domain.ErrorKind(err)}
}
