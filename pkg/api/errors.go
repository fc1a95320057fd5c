package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eurekai25/prospecting-engine/pkg/assetgate"
	"github.com/eurekai25/prospecting-engine/pkg/config"
	"github.com/eurekai25/prospecting-engine/pkg/repository"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errKind classifies an error into a fixed set of error kinds, used both
// for the HTTP status mapping and the JSON body's "kind" field.
type errKind string

const (
	kindInvalidInput  errKind = "invalid_input"
	kindNotFound      errKind = "not_found"
	kindGateBlocked   errKind = "gate_blocked"
	kindAdapterError  errKind = "adapter_error"
	kindStateConflict errKind = "state_conflict"
	kindAuthFailed    errKind = "auth_failed"
	kindInternalError errKind = "internal_error"
)

var statusByKind = map[errKind]int{
	kindInvalidInput:  http.StatusBadRequest,
	kindNotFound:      http.StatusNotFound,
	kindGateBlocked:   http.StatusConflict,
	kindAdapterError:  http.StatusBadGateway,
	kindStateConflict: http.StatusConflict,
	kindAuthFailed:    http.StatusUnauthorized,
	kindInternalError: http.StatusInternalServerError,
}

// respondError classifies err and writes the matching status + ErrorResponse
// body, chaining errors.As/errors.Is against the domain's own error types
// and sentinels.
func respondError(c *gin.Context, err error) {
	kind, message := classify(err)
	if kind == kindInternalError {
		slog.Error("unexpected API error", "error", err)
	}
	c.JSON(statusByKind[kind], ErrorResponse{Kind: string(kind), Message: message})
}

func classify(err error) (errKind, string) {
	var conflict *repository.StateConflictError
	if errors.As(err, &conflict) {
		return kindStateConflict, conflict.Error()
	}
	if errors.Is(err, repository.ErrNotFound) {
		return kindNotFound, "resource not found"
	}
	var gateErr *assetgate.GateError
	if errors.As(err, &gateErr) {
		return kindGateBlocked, gateErr.Error()
	}
	if errors.Is(err, assetgate.ErrInvalidInput) {
		return kindInvalidInput, "invalid input"
	}
	var validErr *config.ValidationError
	if errors.As(err, &validErr) {
		return kindInvalidInput, validErr.Error()
	}
	if errors.Is(err, errInvalidInput) {
		return kindInvalidInput, err.Error()
	}
	if errors.Is(err, errAdapterUnavailable) {
		return kindAdapterError, err.Error()
	}
	if errors.Is(err, errNotScored) {
		return kindNotFound, "prospect has not been scored yet"
	}
	if errors.Is(err, errAuthFailed) {
		return kindAuthFailed, "invalid or missing admin token"
	}
	return kindInternalError, "internal server error"
}

// errInvalidInput, errAdapterUnavailable, errNotScored and errAuthFailed
// are this package's own sentinels for failures that have no deeper
// domain type.
var (
	errInvalidInput       = errors.New("invalid input")
	errAdapterUnavailable = errors.New("no AI adapter configured")
	errNotScored          = errors.New("prospect has not been scored yet")
	errAuthFailed         = errors.New("invalid or missing admin token")
)
