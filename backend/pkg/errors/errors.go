package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeSocial represents relationship/domain-rule errors
	ErrorTypeSocial ErrorType = "social"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Graph Errors

// ErrUserNotFound is returned when a user id does not resolve to a node
type ErrUserNotFound struct {
	*BaseError
	UserID int64
}

func NewUserNotFound(userID int64) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("user not found: %d", userID), nil),
		UserID:    userID,
	}
}

// ErrStoreUnavailable is returned when a Neo4j operation fails at the driver level
type ErrStoreUnavailable struct {
	*BaseError
	Operation string
}

func NewStoreUnavailable(operation string, err error) *ErrStoreUnavailable {
	return &ErrStoreUnavailable{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("store operation failed: %s", operation), err),
		Operation: operation,
	}
}

// Social Errors

// ErrSameUser is returned when an operation requires two distinct users
type ErrSameUser struct {
	*BaseError
	UserID int64
}

func NewSameUser(userID int64) *ErrSameUser {
	return &ErrSameUser{
		BaseError: NewBaseError(ErrorTypeSocial, fmt.Sprintf("operation requires two distinct users, got %d twice", userID), nil),
		UserID:    userID,
	}
}

// ErrDuplicateRequest is returned when an outstanding request already exists
// for the ordered (sender, recipient) pair
type ErrDuplicateRequest struct {
	*BaseError
	FromID int64
	ToID   int64
}

func NewDuplicateRequest(fromID, toID int64) *ErrDuplicateRequest {
	return &ErrDuplicateRequest{
		BaseError: NewBaseError(ErrorTypeSocial, fmt.Sprintf("friendship request %d -> %d already exists", fromID, toID), nil),
		FromID:    fromID,
		ToID:      toID,
	}
}

// ErrAlreadyFriends is returned when a request or friendship is attempted
// between users that are already friends
type ErrAlreadyFriends struct {
	*BaseError
	UserID1 int64
	UserID2 int64
}

func NewAlreadyFriends(userID1, userID2 int64) *ErrAlreadyFriends {
	return &ErrAlreadyFriends{
		BaseError: NewBaseError(ErrorTypeSocial, fmt.Sprintf("users %d and %d are already friends", userID1, userID2), nil),
		UserID1:   userID1,
		UserID2:   userID2,
	}
}

// ErrRequestNotFound is returned when accepting or rejecting a request that
// does not exist
type ErrRequestNotFound struct {
	*BaseError
	FromID int64
	ToID   int64
}

func NewRequestNotFound(fromID, toID int64) *ErrRequestNotFound {
	return &ErrRequestNotFound{
		BaseError: NewBaseError(ErrorTypeSocial, fmt.Sprintf("no friendship request %d -> %d", fromID, toID), nil),
		FromID:    fromID,
		ToID:      toID,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type typed interface {
	errorType() ErrorType
}

func (e *BaseError) errorType() ErrorType { return e.Type }

// IsErrorType checks if an error belongs to a specific category
func IsErrorType(err error, errType ErrorType) bool {
	var t typed
	if errors.As(err, &t) {
		return t.errorType() == errType
	}
	return false
}

// IsNotFound reports whether err is a user-not-found error
func IsNotFound(err error) bool {
	var e *ErrUserNotFound
	return errors.As(err, &e)
}

// IsRequestNotFound reports whether err is a request-not-found error
func IsRequestNotFound(err error) bool {
	var e *ErrRequestNotFound
	return errors.As(err, &e)
}

// IsSameUser reports whether err is a same-user error
func IsSameUser(err error) bool {
	var e *ErrSameUser
	return errors.As(err, &e)
}

// IsDuplicateRequest reports whether err is a duplicate-request error
func IsDuplicateRequest(err error) bool {
	var e *ErrDuplicateRequest
	return errors.As(err, &e)
}

// IsAlreadyFriends reports whether err is an already-friends error
func IsAlreadyFriends(err error) bool {
	var e *ErrAlreadyFriends
	return errors.As(err, &e)
}

// IsStoreUnavailable reports whether err is a store-level failure
func IsStoreUnavailable(err error) bool {
	var e *ErrStoreUnavailable
	return errors.As(err, &e)
}
