package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrSyncInProgress", ErrSyncInProgress},
		{"ErrInvalidCursor", ErrInvalidCursor},
		{"ErrTransport", ErrTransport},
		{"ErrEncrypted", ErrEncrypted},
		{"ErrMalformedDocument", ErrMalformedDocument},
		{"ErrTooLarge", ErrTooLarge},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrAuthInvalid", ErrAuthInvalid},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("export file abc: %w", ErrTransport)
	assert.ErrorIs(t, wrapped, ErrTransport)
	assert.NotErrorIs(t, wrapped, ErrEncrypted)
}

func TestIsItemError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport", fmt.Errorf("download: %w", ErrTransport), true},
		{"encrypted", fmt.Errorf("pdf: %w", ErrEncrypted), true},
		{"malformed", ErrMalformedDocument, true},
		{"too large", fmt.Errorf("export: %w", ErrTooLarge), true},
		{"auth invalid", ErrAuthInvalid, false},
		{"context cancelled", context.Canceled, false},
		{"not found", ErrNotFound, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsItemError(tt.err))
		})
	}
}
