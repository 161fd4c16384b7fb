package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapWriteError(t *testing.T) {
	t.Run("Should name the field behind a known unique index", func(t *testing.T) {
		err := mapWriteError(fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "students_student_id_key"}))

		var dup *domain.DuplicateKeyError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "studentId", dup.Field)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("Should pass through other errors", func(t *testing.T) {
		other := &pgconn.PgError{Code: "23503"}
		assert.Same(t, other, mapWriteError(other))
		assert.NoError(t, mapWriteError(nil))
	})
}

func TestMapReadError(t *testing.T) {
	t.Run("Should map a missing row to not found", func(t *testing.T) {
		assert.ErrorIs(t, mapReadError(pgx.ErrNoRows), domain.ErrNotFound)
	})

	t.Run("Should map a malformed uuid to not found", func(t *testing.T) {
		err := fmt.Errorf("scan: %w", &pgconn.PgError{Code: pgInvalidTextRepresentation, Message: `invalid input syntax for type uuid: "abc"`})
		assert.ErrorIs(t, mapReadError(err), domain.ErrNotFound)
	})

	t.Run("Should pass through other errors", func(t *testing.T) {
		boom := errors.New("boom")
		assert.Equal(t, boom, mapReadError(boom))
		conn := &pgconn.PgError{Code: "08006"}
		assert.Same(t, conn, mapReadError(conn))
	})
}
