package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-repo-pulse/internal/adapter"
	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/crypto"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/validators"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// Built-in action names.
const (
	ActionGitAccessToken    = "upsert_git_access_token"
	ActionGitRepositoryLink = "upsert_git_repository_link"
	ActionDockerUsername    = "upsert_docker_username"
	ActionDockerPassword    = "upsert_docker_password"
)

// SecretAction upserts one Actions secret with a value taken from the
// configuration.
type SecretAction struct {
	Name   string
	Secret string
	Value  func(config.Secrets) string
}

// DefaultSecretActions returns the actions every registry starts with.
func DefaultSecretActions() []SecretAction {
	return []SecretAction{
		{
			Name:   ActionGitAccessToken,
			Secret: "GIT_ACCESS_TOKEN",
			Value:  func(s config.Secrets) string { return s.GitAccessToken },
		},
		{
			Name:   ActionGitRepositoryLink,
			Secret: "GIT_REPOSITORY_LINK",
			Value:  func(s config.Secrets) string { return s.GitRepositoryLink },
		},
		{
			Name:   ActionDockerUsername,
			Secret: "DOCKER_USERNAME",
			Value:  func(s config.Secrets) string { return s.DockerUsername },
		},
		{
			Name:   ActionDockerPassword,
			Secret: "DOCKER_PASSWORD",
			Value:  func(s config.Secrets) string { return s.DockerPassword },
		},
	}
}

var _ SecretsService = (*SecretsRegistry)(nil)

// SecretsRegistry is the [SecretsService] holding an explicit name to action
// table. Actions run in registration order.
type SecretsRegistry struct {
	github    adapter.GitHubAdapter
	sealer    crypto.SecretSealer
	validator validators.Validator
	cfg       config.Secrets

	actions map[string]SecretAction
	order   []string

	logger *logger.Logger
}

// NewSecretsRegistry builds a registry with the default actions.
func NewSecretsRegistry(github adapter.GitHubAdapter, sealer crypto.SecretSealer, validator validators.Validator, cfg config.Secrets, log *logger.Logger) *SecretsRegistry {
	r := &SecretsRegistry{
		github:    github,
		sealer:    sealer,
		validator: validator,
		cfg:       cfg,
		actions:   make(map[string]SecretAction),
		logger:    log,
	}
	for _, a := range DefaultSecretActions() {
		// the defaults are distinct and well formed
		_ = r.Register(a)
	}
	return r
}

// Register adds a. Names must be unique and secret names valid.
func (r *SecretsRegistry) Register(a SecretAction) error {
	if _, ok := r.actions[a.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, a.Name)
	}
	if !validators.IsValidSecretName(a.Secret) || a.Value == nil {
		return fmt.Errorf("%w: %q", ErrInvalidSecretName, a.Secret)
	}
	r.actions[a.Name] = a
	r.order = append(r.order, a.Name)
	return nil
}

// Names returns the registered action names in registration order.
func (r *SecretsRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Run executes the named action.
func (r *SecretsRegistry) Run(ctx context.Context, name string) (models.SecretActionResult, error) {
	a, ok := r.actions[name]
	if !ok {
		return models.SecretActionResult{}, fmt.Errorf("%w: %s", ErrUnknownSecretAction, name)
	}
	return r.run(ctx, a, nil)
}

// RunAll executes every action in order, fetching the public key once.
func (r *SecretsRegistry) RunAll(ctx context.Context) ([]models.SecretActionResult, error) {
	r.logger.Info().Int("actions", len(r.order)).Msg("executing all secrets actions")

	var (
		key     *models.ActionsPublicKey
		results = make([]models.SecretActionResult, 0, len(r.order))
		errs    []error
	)
	for _, name := range r.order {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		a := r.actions[name]
		if key == nil && a.Value(r.cfg) != "" {
			k, err := r.publicKey(ctx)
			if err != nil {
				return results, err
			}
			key = &k
		}

		res, err := r.run(ctx, a, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

func (r *SecretsRegistry) run(ctx context.Context, a SecretAction, key *models.ActionsPublicKey) (models.SecretActionResult, error) {
	res := models.SecretActionResult{Action: a.Name, Secret: a.Secret}

	value := a.Value(r.cfg)
	if value == "" {
		r.logger.Warn().Str("action", a.Name).Str("secret", a.Secret).Msg("no value configured, skipping")
		res.Skipped = true
		return res, nil
	}

	target, err := r.cfg.Target()
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	if key == nil {
		k, err := r.publicKey(ctx)
		if err != nil {
			return res, err
		}
		key = &k
	}

	sealed, err := r.sealer.Seal(key.Key, []byte(value))
	if err != nil {
		return res, fmt.Errorf("seal %s: %w", a.Secret, err)
	}

	secret := models.EncryptedSecret{Name: a.Secret, EncryptedValue: sealed, KeyID: key.KeyID}
	if err = r.validator.Validate(ctx, secret); err != nil {
		return res, err
	}

	r.logger.Info().Str("action", a.Name).Msg("executing secrets action")
	if err = r.github.PutActionsSecret(ctx, target.Owner, target.Name, secret); err != nil {
		r.logger.Err(err).Str("secret", a.Secret).Msg("error upserting secret")
		return res, err
	}

	r.logger.Info().Msgf("Secret '%s' upserted in %s.", a.Secret, target)
	return res, nil
}

func (r *SecretsRegistry) publicKey(ctx context.Context) (models.ActionsPublicKey, error) {
	target, err := r.cfg.Target()
	if err != nil {
		return models.ActionsPublicKey{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return r.github.GetActionsPublicKey(ctx, target.Owner, target.Name)
}
