package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isSerializationFailure verifica fallas de concurrencia de PostgreSQL:
// serialization_failure (40001) y deadlock_detected (40P01). El caller puede
// reintentar la transacción completa.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// nullStr convierte "" a NULL para columnas de texto opcionales.
func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// strVal devuelve "" para NULL.
func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
