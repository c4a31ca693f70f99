package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	sentinel := NotFound("semester not found")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"business", Conflict("name taken"), http.StatusConflict},
		{"wrapped business", fmt.Errorf("service: %w", sentinel), http.StatusNotFound},
		{"canceled", context.Canceled, StatusClientClosedRequest},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "", MessageOf(nil))
	assert.Equal(t, "name taken", MessageOf(Conflict("name taken")))
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: connection refused")))
	assert.Equal(t, "request canceled", MessageOf(context.Canceled))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("failed to save file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save file: disk full", err.Error())
	assert.Equal(t, "failed to save file", MessageOf(err))
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := NotFound("file not found")
	wrapped := fmt.Errorf("get file: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, NotFound("file not found"))
}
