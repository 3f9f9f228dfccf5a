package adapter

import "errors"

var (
	ErrInvalidBaseURL     = errors.New("invalid github api url")
	ErrUnauthorized       = errors.New("github rejected the credentials")
	ErrForbidden          = errors.New("github denied access")
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrRateLimited        = errors.New("github rate limit exceeded")
	ErrUnavailable        = errors.New("github unavailable")
	ErrEmptySecretName    = errors.New("empty secret name")
	ErrUnexpectedResponse = errors.New("unexpected github response")
)
