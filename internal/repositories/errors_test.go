package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	apperrors "refurb-tracker/pkg/errors"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{pgUniqueViolation, apperrors.ErrConflict},
		{pgForeignKeyViolation, apperrors.ErrInUse},
		{pgCheckViolation, apperrors.ErrInvalidValue},
		{pgNotNullViolation, apperrors.ErrBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := mapPgError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: tc.code, ConstraintName: "c"}))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.ErrorIs(t, mapPgError(pgx.ErrNoRows), apperrors.ErrNotFound)
	assert.Nil(t, mapPgError(nil))

	other := errors.New("connection reset")
	assert.Equal(t, other, mapPgError(other))
}

func TestIsUndefinedRelation(t *testing.T) {
	assert.True(t, isUndefinedRelation(&pgconn.PgError{Code: pgUndefinedTable}))
	assert.True(t, isUndefinedRelation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: pgUndefinedColumn})))
	assert.False(t, isUndefinedRelation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isUndefinedRelation(errors.New("x")))
}
