// file: internals/helpers/errors.go
package helper

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// IsNotFound separates "row does not exist" from "store is unavailable" so
// controllers can answer 404 vs 500 correctly.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505), e.g. a duplicate student number or email.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
