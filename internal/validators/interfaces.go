// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces the naming rules of the values the application
// accepts from users and configuration: repository targets, run filters and
// Actions secrets.
//
// Rules are expressed as go-playground/validator struct tags on the models
// (gh_owner, gh_repo, secret_name are registered here). Validate optionally
// restricts the check to the named struct fields.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
