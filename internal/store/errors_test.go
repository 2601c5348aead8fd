package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("lookup: %w", ErrNotFound), expected: true},
		{name: "ErrCompoundNotFound", err: ErrCompoundNotFound, expected: true},
		{name: "ErrElementNotFound", err: ErrElementNotFound, expected: true},
		{name: "ErrFormulaExists", err: ErrFormulaExists, expected: false},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("compound", "get", "query failed", ErrNotFound),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrFormulaExists", err: ErrFormulaExists, expected: true},
		{name: "wrapped ErrFormulaExists", err: fmt.Errorf("create: %w", ErrFormulaExists), expected: true},
		{name: "ErrCompoundNotFound", err: ErrCompoundNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("compound", "create", "insert failed", originalErr)

	assert.Equal(t,
		"create operation on compound failed: insert failed: database connection failed",
		storeErr.Error())
	assert.ErrorIs(t, storeErr, originalErr)

	bare := NewStoreError("element", "list", "no rows", nil)
	assert.Equal(t, "list operation on element failed: no rows", bare.Error())
	assert.NoError(t, bare.Unwrap())
}
