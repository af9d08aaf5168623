package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/payouts/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	other := errors.New("connection reset")
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
		{"joined duplicate", errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), domain.ErrAlreadyExists},
		{"unmapped", other, other},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mapError(tt.input)
			if tt.expected == nil {
				require.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expected)
		})
	}
}

func TestWrap_PropagatesPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_ = wrap(func() error { panic("boom") })
	})
}
