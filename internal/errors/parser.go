package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a code plus a user-presentable message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage-layer failures into a presentable code and
// message without leaking driver internals to the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// Postgres constraint violations

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "pan") {
			return ErrorInfo{
				Code:    ResourceAlreadyExists,
				Message: "A deductee with this PAN already exists",
			}
		}
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists",
		}
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "A related record is missing or still referenced",
		}
	}

	if strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The database is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong. Please try again later",
	}
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "deductee"):
		return "Deductee not found"
	case strings.Contains(context, "transaction"):
		return "Transaction not found"
	case strings.Contains(context, "challan"):
		return "Challan not found"
	default:
		return "Record not found"
	}
}
