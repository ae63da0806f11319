package service

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/internal/utils"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Clock returns the current time; services take one so tests can pin it.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// mapRepoErr turns missing rows into ErrNotFound and constraint violations into ErrConflict.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case utils.IsPGUniqueViolation(err):
		return ErrConflict
	case utils.IsPGForeignKeyViolation(err), utils.IsPGCheckViolation(err):
		return ErrInvalidInput
	default:
		return err
	}
}
