package lib

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Request errors
var (
	ErrValidation  = errors.New("validation failed")
	ErrEmptyCart   = errors.New("cart is empty")
	ErrCartChanged = errors.New("cart changed during checkout")
)

// Auth errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SQLState returns the SQLSTATE code carried by a pgx or pgdriver error, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var driverErr pgdriver.Error
	if errors.As(err, &driverErr) {
		return driverErr.Field('C')
	}
	return ""
}

// MapDBError translates driver errors into the sentinels above.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	switch SQLState(err) {
	case "23505": // unique_violation
		return errors.Join(ErrConflict, err)
	case "23503", "P0002": // foreign_key_violation, no_data_found
		return errors.Join(ErrNotFound, err)
	}

	// sqlite reports constraint failures only through the message
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return errors.Join(ErrConflict, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Join(ErrNotFound, err)
	}
	return err
}
