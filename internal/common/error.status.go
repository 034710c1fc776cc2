package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status code constants
const (
	StatusOK      = 200
	StatusCreated = 201

	StatusBadRequest = 400
	StatusForbidden  = 403
	StatusNotFound   = 404
	StatusConflict   = 409

	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Response messages
const (
	MsgSuccess = "OK"

	MsgBadRequest    = "Invalid request"
	MsgForbidden     = "Forbidden"
	MsgNotFound      = "Resource not found"
	MsgConflict      = "Write conflict"
	MsgInternalError = "Internal server error"

	MsgValidationError = "Invalid input data"
	MsgInvalidFormat   = "Malformed request body"
	MsgDatabaseError   = "Database interaction failed"
	MsgUploadError     = "Upload failed"
)

// ErrorCode classifies an error for clients and logs.
type ErrorCode struct {
	Code        string // Machine code (e.g. VAL_001)
	Category    string // Error category (e.g. Validation)
	Description string // Human description
}

// Error codes, grouped by taxonomy entry.
var (
	// System errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		Description: "Internal system error",
	}

	// Validation errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		Description: "Invalid input data",
	}
	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		Description: "Malformed data format",
	}

	// Authorization errors (AUTHZ_xxx)
	ErrCodeOwnership = ErrorCode{
		Code:        "AUTHZ_001",
		Category:    "Authorization",
		Description: "Caller does not own the resource",
	}

	// Database errors (DB_xxx)
	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		Description: "Database connection error",
	}
	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		Description: "Database query error",
	}
	ErrCodeDatabaseConflict = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		Description: "Concurrent write conflict",
	}

	// Object store errors (STORE_xxx)
	ErrCodeStorageUpload = ErrorCode{
		Code:        "STORE_001",
		Category:    "Storage",
		Description: "Object store upload error",
	}
)

// Error is the structured error carried from services to the HTTP layer.
// It is mapped to a status code exactly once, in the response helper.
type Error struct {
	Code       ErrorCode // Detailed error code
	Message    string    // Client-facing message
	StatusCode int       // HTTP status code
	Details    any       // Extra detail, logged but not required
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// Is supports errors.Is by comparing code and message.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError creates a fully populated error.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Sentinel errors
var (
	// Validation
	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)

	// Not found
	ErrNotFound = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)

	// Authorization
	ErrForbidden = NewError(ErrCodeOwnership, MsgForbidden, StatusForbidden, nil)

	// Backing stores
	ErrConflict     = NewError(ErrCodeDatabaseConflict, MsgConflict, StatusConflict, nil)
	ErrDatabase     = NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, nil)
	ErrConnection   = NewError(ErrCodeDatabaseConnection, MsgDatabaseError, StatusServiceUnavailable, nil)
	ErrUploadFailed = NewError(ErrCodeStorageUpload, MsgUploadError, StatusInternalServerError, nil)
)

// ConvertMongoError maps a MongoDB driver error onto the taxonomy.
// ErrNotFound passes through untouched: a missing document is a normal
// outcome that handlers branch on, not a 500.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeDatabaseQuery, MsgConflict, StatusConflict, err)
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabaseConnection, MsgDatabaseError, StatusServiceUnavailable, err)
	}

	return NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, err)
}
