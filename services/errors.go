package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrBookingConflict = errors.New("booking_conflict")
	ErrHoldNotFound    = errors.New("hold_not_found")
	ErrProvider        = errors.New("payment_provider_error")
)

// isDuplicateKeyError detects a MySQL unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	return false
}

// isLockConflictError detects an InnoDB deadlock (1213) or lock wait
// timeout (1205). Two holds racing for the same free gap end this way.
func isLockConflictError(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1213 || merr.Number == 1205
	}
	return false
}
