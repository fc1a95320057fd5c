package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eurekai25/prospecting-engine/pkg/assetgate"
	"github.com/eurekai25/prospecting-engine/pkg/repository"
)

func TestClassifyStateConflict(t *testing.T) {
	err := &repository.StateConflictError{From: "TESTING", To: "SCANNED"}
	kind, _ := classify(err)
	assert.Equal(t, kindStateConflict, kind)
	assert.Equal(t, statusByKind[kindStateConflict], 409)
}

func TestClassifyNotFound(t *testing.T) {
	kind, msg := classify(repository.ErrNotFound)
	assert.Equal(t, kindNotFound, kind)
	assert.NotEmpty(t, msg)
}

func TestClassifyGateBlocked(t *testing.T) {
	err := &assetgate.GateError{Gate: "READY_TO_SEND", Reasons: []string{"video_url manquante"}}
	kind, msg := classify(err)
	assert.Equal(t, kindGateBlocked, kind)
	assert.Contains(t, msg, "READY_TO_SEND")
}

func TestClassifyInvalidInput(t *testing.T) {
	kind, _ := classify(assetgate.ErrInvalidInput)
	assert.Equal(t, kindInvalidInput, kind)

	kind, _ = classify(errInvalidInput)
	assert.Equal(t, kindInvalidInput, kind)
}

func TestClassifyAdapterUnavailable(t *testing.T) {
	kind, _ := classify(errAdapterUnavailable)
	assert.Equal(t, kindAdapterError, kind)
}

func TestClassifyAuthFailed(t *testing.T) {
	kind, _ := classify(errAuthFailed)
	assert.Equal(t, kindAuthFailed, kind)
}

func TestClassifyFallsBackToInternalError(t *testing.T) {
	kind, msg := classify(errors.New("boom"))
	assert.Equal(t, kindInternalError, kind)
	assert.Equal(t, "internal server error", msg)
}
