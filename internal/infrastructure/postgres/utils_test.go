package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// TestIsSerializationFailure verifica la traducción de las fallas de
// concurrencia reintenables de PostgreSQL: serialization_failure (40001) y
// deadlock_detected (40P01). Cualquier otro código pasa de largo.
func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: "40P01"}))

	// errors.As desenvuelve los wraps de los adaptadores.
	wrapped := fmt.Errorf("post movement: %w", &pgconn.PgError{Code: "40001"})
	assert.True(t, isSerializationFailure(wrapped))

	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("connection refused")))
	assert.False(t, isSerializationFailure(fmt.Errorf("get variant: %w", errors.New("timeout"))))
}

// TestIsUniqueViolation verifica la detección de 23505 (unique_violation),
// directa, envuelta o solo presente en el mensaje.
func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("create product: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
