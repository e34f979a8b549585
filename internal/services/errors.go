package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrValidation(msg string, fields ...FieldError) error {
	return ServiceError{Kind: KindValidation, Message: msg, Fields: fields}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Kind: KindUnauthorized, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Kind: KindForbidden, Message: msg}
}

func ErrNotFound(msg string) error {
	return ServiceError{Kind: KindNotFound, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Kind: KindConflict, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// AsServiceError reports the ServiceError in err's chain. Anything else is internal.
func AsServiceError(err error) (ServiceError, bool) {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return ServiceError{Kind: KindInternal, Message: "Internal server error"}, false
}

// withTimeout bounds a persistence call. A non-positive timeout leaves ctx unbounded.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func requireOwner(caller string, userID string) error {
	if caller == "" || caller != userID {
		return ErrForbidden("Not authorized")
	}
	return nil
}
