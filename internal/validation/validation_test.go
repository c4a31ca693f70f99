package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/errs"
)

type sample struct {
	Name  string `binding:"required,max=5"`
	Email string `binding:"omitempty,email"`
	Kind  string `binding:"omitempty,oneof=a b"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantMsg string
	}{
		{"ok", sample{Name: "abc"}, ""},
		{"required", sample{}, "name is required"},
		{"max", sample{Name: "abcdefg"}, "name must be at most 5 characters"},
		{"email", sample{Name: "a", Email: "nope"}, "email must be a valid email"},
		{"oneof", sample{Name: "a", Kind: "c"}, "kind must be one of [a b]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, errs.CodeOf(err))
			assert.Equal(t, tt.wantMsg, errs.MessageOf(err))
		})
	}
}

func TestDescribe_NonValidationError(t *testing.T) {
	assert.Equal(t, "invalid request", Describe(errors.New("x")))
}
