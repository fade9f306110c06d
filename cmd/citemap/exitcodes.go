// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import "errors"

// Exit codes
const (
	ExitSuccess      = 0 // Success, including runs with unresolved or failed entries
	ExitError        = 1 // General error (invalid flags, unwritable output)
	ExitMissingInput = 2 // The stage's input file does not exist
)

// errMissingInput marks errors caused by an absent input artifact.
var errMissingInput = errors.New("missing input")

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errMissingInput):
		return ExitMissingInput
	default:
		return ExitError
	}
}
