package smartstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	cause := errors.New("bad digits")
	err := newError(CodeCorruptEntry, "get", "token", cause)

	assert.ErrorIs(t, err, ErrCorruptEntry)
	assert.NotErrorIs(t, err, ErrMissingArgument)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("loading session: %w", err)
	assert.ErrorIs(t, wrapped, ErrCorruptEntry)

	var se *Error
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, "token", se.Key)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ErrMissingArgument, "smartstore: MissingArgument"},
		{newError(CodeMissingArgument, "remove", "", errors.New("key is required")), "smartstore: remove: MissingArgument: key is required"},
		{newError(CodeUnsupportedValue, "set", "f", nil), `smartstore: set: UnsupportedValue (key "f")`},
		{&Error{Code: 99}, "smartstore: Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
