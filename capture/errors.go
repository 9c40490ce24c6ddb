// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrLifecycleViolation is wrapped by every *LifecycleError.
	ErrLifecycleViolation = errors.New("capture: lifecycle violation")

	// ErrPageIndex is returned for a page index outside the document.
	ErrPageIndex = errors.New("capture: page index out of range")
)

// LifecycleError describes a DocumentCanvas call made in the wrong state.
// It is the panic value for lifecycle violations.
type LifecycleError struct {
	Op     string
	State  State
	Reason string
}

// Error implements error.
func (e *LifecycleError) Error() string {
	return fmt.Sprintf("capture: %s in state %s: %s", e.Op, e.State, e.Reason)
}

// Unwrap returns ErrLifecycleViolation.
func (e *LifecycleError) Unwrap() error {
	return ErrLifecycleViolation
}
