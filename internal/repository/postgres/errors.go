package postgres

import (
	"errors"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// uniqueFields maps unique index names from schema.sql to the input field
// they guard.
var uniqueFields = map[string]string{
	"students_email_key":                  "email",
	"students_student_id_key":             "studentId",
	"companies_hr_email_key":              "hrEmail",
	"admins_email_key":                    "email",
	"applications_student_internship_key": "internshipId",
}

// mapWriteError turns a unique violation into a *domain.DuplicateKeyError.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		field, ok := uniqueFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ConstraintName
		}
		return &domain.DuplicateKeyError{Field: field}
	}
	return err
}

// mapReadError turns pgx.ErrNoRows into domain.ErrNotFound. An id that is
// not a valid UUID cannot name a row, so it is not found either.
func mapReadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return domain.ErrNotFound
	}
	return err
}
