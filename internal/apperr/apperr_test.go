package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"tagged error", New(NotFound, "Order not found"), NotFound},
		{"wrapped tagged error", fmt.Errorf("outer: %w", New(InvalidState, "Cart is empty")), InvalidState},
		{"untagged error defaults to internal", errors.New("database error"), Internal},
		{"wrap keeps the kind", Wrap(Internal, "failed to place order", errors.New("db down")), Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Cart is empty", MessageOf(New(InvalidState, "Cart is empty")))
	assert.Equal(t, "Something went wrong", MessageOf(errors.New("sql: connection refused")))
}

func TestUnwrap(t *testing.T) {
	root := errors.New("db down")
	err := Wrap(Internal, "failed to place order", root)
	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "failed to place order")
	assert.Contains(t, err.Error(), "db down")
}
