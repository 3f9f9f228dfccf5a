// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the upstream GitHub REST API client used by the
// flow and secrets services.
//
// The primary abstraction is [GitHubAdapter], which decouples the service layer
// from the wire protocol. The implementation ([NewGitHubAdapter]) drives every
// call through one long-lived [requests.Session], so retries, rate limiting
// and error classification are shared by all endpoints.
//
// Failures keep the *requests.RequestError in their chain and are additionally
// tagged with the sentinels of errors.go (e.g. [ErrRepositoryNotFound] for 404,
// [ErrUnauthorized] for 401) so callers can use [errors.Is] on either.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-repo-pulse/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/github_adapter_mock.go -package=mock

// GitHubAdapter defines the GitHub endpoints the application talks to.
type GitHubAdapter interface {
	// GetRepository fetches the repository resource of owner/name. A missing
	// repository is reported as [ErrRepositoryNotFound].
	GetRepository(ctx context.Context, owner, name string) (models.Repository, error)

	// ListContributors returns every contributor of repo, following the
	// pagination links of the listing. A listing that does not exist (404) or
	// an empty repository (204) yields an empty slice.
	ListContributors(ctx context.Context, repo models.Repository) ([]models.Contributor, error)

	// GetActionsPublicKey returns the key Actions secrets of owner/name must be
	// sealed with.
	GetActionsPublicKey(ctx context.Context, owner, name string) (models.ActionsPublicKey, error)

	// PutActionsSecret creates or updates an Actions secret of owner/name.
	PutActionsSecret(ctx context.Context, owner, name string, secret models.EncryptedSecret) error

	// Close releases the pooled connections. Calls after Close fail.
	Close()
}
