// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while reading query parameters and bodies.
var (
	// ErrInvalidLimit is returned when the limit query parameter is not a
	// non-negative integer.
	ErrInvalidLimit = errors.New("limit must be a non-negative integer")

	// ErrMissingTarget is returned when a request names no owner or repo.
	ErrMissingTarget = errors.New("owner and repo are required")

	// ErrInvalidBody is returned when a request body is not valid JSON.
	ErrInvalidBody = errors.New("invalid JSON was passed")
)
