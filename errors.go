package kvsession

import (
	"errors"
	"fmt"
)

var (
	ErrCapabilityUnavailable = errors.New("storage capability unavailable")

	ErrVersion             = errors.New("requested version is less than stored version")
	ErrCollectionNotFound  = errors.New("collection doesn't exist")
	ErrCollectionExists    = errors.New("collection already exists")
	ErrTransactionInactive = errors.New("transaction is not active")
	ErrReadOnly            = errors.New("transaction is read only")
	ErrAborted             = errors.New("transaction aborted")
	ErrClosed              = errors.New("connection is closed")
	ErrInvalidKey          = errors.New("invalid key")
	ErrInvalidName         = errors.New("invalid name")
)

// OpenError reports a failed connection open or version read.
type OpenError struct {
	Database string
	Cause    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open database %s failed: %v", e.Database, e.Cause)
}

func (e *OpenError) Unwrap() error {
	return e.Cause
}

// RequestError reports a failed request, or a transaction that could not
// be started, against one collection.
type RequestError struct {
	Database   string
	Collection string
	Cause      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request on %s/%s failed: %v", e.Database, e.Collection, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

type DeleteError struct {
	Database string
	Cause    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete database %s failed: %v", e.Database, e.Cause)
}

func (e *DeleteError) Unwrap() error {
	return e.Cause
}
