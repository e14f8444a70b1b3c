package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	err := NotFound("movie", "m-1")
	assert.Equal(t, "NOT_FOUND: movie with id m-1 not found", err.Error())

	gw := Gateway("payment initialization failed", `{"status":false}`)
	assert.Contains(t, gw.Error(), `{"status":false}`)
}

func TestAppErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("cart", "u-1"), ErrNotFound)
	assert.ErrorIs(t, Conflict("duplicate"), ErrConflict)
	assert.ErrorIs(t, InvalidState("expired"), ErrInvalidState)
	assert.ErrorIs(t, NotAuthenticated("no identity"), ErrNotAuthenticated)
	assert.ErrorIs(t, Gateway("failed", ""), ErrGateway)
	assert.ErrorIs(t, Configuration("unmapped type"), ErrConfiguration)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("movie", "m-1"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{InvalidState("expired"), http.StatusUnprocessableEntity},
		{Validation("bad"), http.StatusBadRequest},
		{NotAuthenticated("nope"), http.StatusUnauthorized},
		{Gateway("down", ""), http.StatusBadGateway},
		{errors.New("unknown"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrGateway), http.StatusBadGateway},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}

func TestGatewayDetailNotSerialized(t *testing.T) {
	// Detail is diagnostics-only; the JSON shape must not expose it.
	gw := Gateway("payment verification failed", "raw upstream body")
	assert.Equal(t, "GATEWAY_ERROR", gw.Code)
	assert.NotContains(t, gw.Message, "raw upstream body")
}
