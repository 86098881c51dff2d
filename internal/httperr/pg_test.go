package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsExclusionConflict(t *testing.T) {
	exclusion := &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_slot_excl"}
	unique := &pgconn.PgError{Code: "23505"}
	foreignKey := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsExclusionConflict(exclusion))
	assert.True(t, IsExclusionConflict(unique))
	assert.False(t, IsExclusionConflict(foreignKey))
	assert.False(t, IsExclusionConflict(nil))
	assert.False(t, IsExclusionConflict(errors.New("connection reset")))
	assert.False(t, IsExclusionConflict(ErrBusiness("slot_unavailable")))

	// driver errors usually arrive wrapped
	wrapped := fmt.Errorf("insert reservation: %w", exclusion)
	assert.True(t, IsExclusionConflict(wrapped))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
