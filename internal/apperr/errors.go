// Package apperr holds the sentinel errors shared by the stores and transports.
package apperr

import "errors"

var (
	ErrNotFound    = errors.New("does not exist")
	ErrInvalidName = errors.New("invalid entry name")
	ErrNoDirectory = errors.New("journal directory is not configured")
)
