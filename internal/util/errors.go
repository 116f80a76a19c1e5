// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound     = errors.New("no login record for uid")  // uid lies at or beyond the end of the database
	ErrUnknownUser  = errors.New("unknown user")             // account database has no such account
	ErrNoDatabase   = errors.New("no usable login database") // none of the probed files passed a trial read
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsError reports whether err matches target anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
