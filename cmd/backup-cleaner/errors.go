package main

import (
	"errors"

	"github.com/raoulx24/backup-cleaner/internal/config"
)

const (
	exitOK = 0
	// exitFailure: a pass started and something went wrong, possibly
	// after deleting some entries.
	exitFailure = 1
	// exitConfig: bad flags, config or folder; nothing was touched.
	exitConfig = 2
)

// usageError wraps command-line mistakes detected before any work starts.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	var verr *config.ValidationError
	if errors.As(err, &uerr) || errors.As(err, &verr) {
		return exitConfig
	}
	return exitFailure
}
