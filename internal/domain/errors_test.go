package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/orcamentos-api/internal/domain"
)

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := fmt.Errorf("upsert: %w", domain.NewValidationError("price", "no puede ser negativo"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "price", ve.Field)
	assert.Contains(t, err.Error(), "no puede ser negativo")
}

func TestStoreError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.NewStoreError("upsert item", cause)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upsert item: connection refused", err.Error())
}
