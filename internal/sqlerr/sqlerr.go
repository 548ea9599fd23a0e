// Package sqlerr handles store driver errors.
//
// It parses SQLite constraint failures and converts them into
// client-facing errors (e.g. a unique violation becomes a Bad Request
// naming the entity).
package sqlerr

import (
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Code is a driver-independent category of store error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
)

// Error is a normalized store error.
type Error struct {
	Code         Code
	DatabaseCode int
	Message      string
	TableName    string
	ColumnName   string
	driverErr    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sql error %s (%d): %s", e.Code, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps an SQLite extended result code to a Code.
func MapCode(code sqlite3.ErrNoExtended) Code {
	switch code {
	case sqlite3.ErrConstraintNotNull:
		return NotNullViolation
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolation
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintRowID:
		return UniqueViolation
	case sqlite3.ErrConstraintCheck:
		return CheckViolation
	default:
		return Other
	}
}

// ConvertSQLiteError converts a driver error into an Error.
func ConvertSQLiteError(src sqlite3.Error) *Error {
	table, column := parseConstraintTarget(src.Error())
	return &Error{
		Code:         MapCode(src.ExtendedCode),
		DatabaseCode: int(src.ExtendedCode),
		Message:      src.Error(),
		TableName:    table,
		ColumnName:   column,
		driverErr:    src,
	}
}

// parseConstraintTarget extracts table and column from messages such as
// "UNIQUE constraint failed: users.id". Foreign key failures carry neither.
func parseConstraintTarget(msg string) (string, string) {
	_, target, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return "", ""
	}
	// Composite constraints list several columns; the first one names the table.
	target, _, _ = strings.Cut(target, ",")
	table, column, ok := strings.Cut(strings.TrimSpace(target), ".")
	if !ok {
		return "", ""
	}
	return table, column
}
