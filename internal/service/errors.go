package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidTarget      = errors.New("invalid repository target")
	ErrInvalidFilter      = errors.New("invalid run filter")
	ErrNoTargets          = errors.New("no repository targets configured")
	ErrStorageUnavailable = errors.New("run storage is not configured")

	ErrUnknownSecretAction = errors.New("unknown secrets action")
	ErrDuplicateAction     = errors.New("secrets action already registered")
	ErrInvalidSecretName   = errors.New("invalid secret name")
)
