// Package apperr holds the typed failures shared by every component.
// Only the HTTP boundary turns them into statuses.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Status is the HTTP status for a kind. Not found is reported as 400.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindNotFound:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Invalid builds a validation failure with a dynamic message.
func Invalid(msg string) *Error {
	return New(KindValidation, msg)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage is the text safe to show a client.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}

var (
	ErrDuplicateUsername = New(KindConflict, "Username is alread taken")
	ErrDuplicateEmail    = New(KindConflict, "Email is already registered")
	ErrWrongCredentials  = New(KindUnauthorized, "Please check your email or password")
	ErrInvalidToken      = New(KindUnauthorized, "Invalid token!")
	ErrTokenExpired      = New(KindUnauthorized, "Token expired")
	ErrTokenMalformed    = New(KindUnauthorized, "Token malformed")
	ErrTokenSignature    = New(KindUnauthorized, "Token signature invalid")
	ErrUnauthorized      = New(KindUnauthorized, "Unauthorized")
	ErrUserNotFound      = New(KindNotFound, "User not found")

	ErrDuplicateCategory      = New(KindConflict, "Category already created")
	ErrCategoryNotFound       = New(KindNotFound, "Category not found")
	ErrCategoryAlreadyDeleted = New(KindConflict, "Category already deleted")
	ErrCannotRestoreCategory  = New(KindConflict, "Category is not deleted")

	ErrDuplicateBrand      = New(KindConflict, "Brand already created")
	ErrBrandNotFound       = New(KindNotFound, "Brand not found")
	ErrBrandAlreadyDeleted = New(KindConflict, "Brand already deleted")
	ErrCannotRestoreBrand  = New(KindConflict, "Brand is not deleted")

	ErrDuplicateProduct      = New(KindConflict, "Product already created")
	ErrProductNotFound       = New(KindNotFound, "Product not found")
	ErrProductAlreadyDeleted = New(KindConflict, "Product already deleted")
	ErrCannotRestoreProduct  = New(KindConflict, "Product is not deleted")

	ErrInvalidPage        = New(KindValidation, "Invalid page")
	ErrInvalidSize        = New(KindValidation, "Invalid size")
	ErrInvalidQuantity    = New(KindValidation, "Invalid quantity")
	ErrInsufficientStock  = New(KindValidation, "Insufficient stock")
	ErrInvalidPrice       = New(KindValidation, "Invalid price")
	ErrInvalidStockAmount = New(KindValidation, "Invalid stock amount")

	ErrStore             = New(KindInternal, "store failure")
	ErrHashingFailure    = New(KindInternal, "hashing failure")
	ErrWorkerUnavailable = New(KindInternal, "worker unavailable")
	ErrSigningFailure    = New(KindInternal, "signing failure")
)
