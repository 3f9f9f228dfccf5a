package validators

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom tags registered on every validator built by NewValidator.
const (
	TagOwner      = "gh_owner"
	TagRepo       = "gh_repo"
	TagSecretName = "secret_name"
)

const (
	maxOwnerLength = 39
	maxRepoLength  = 100
	// reservedSecretPrefix is refused by GitHub for user-defined secrets.
	reservedSecretPrefix = "GITHUB_"
)

var (
	ownerPattern      = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)
	repoPattern       = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	secretNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// IsValidOwner reports whether s is a valid GitHub user or organisation name:
// alphanumerics separated by single hyphens, at most 39 characters.
func IsValidOwner(s string) bool {
	return len(s) <= maxOwnerLength && ownerPattern.MatchString(s)
}

// IsValidRepoName reports whether s is a valid GitHub repository name.
func IsValidRepoName(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return len(s) <= maxRepoLength && repoPattern.MatchString(s)
}

// IsValidSecretName reports whether s can name an Actions secret.
func IsValidSecretName(s string) bool {
	if strings.HasPrefix(strings.ToUpper(s), reservedSecretPrefix) {
		return false
	}
	return secretNamePattern.MatchString(s)
}

func validateOwner(fl validator.FieldLevel) bool {
	return IsValidOwner(fl.Field().String())
}

func validateRepo(fl validator.FieldLevel) bool {
	return IsValidRepoName(fl.Field().String())
}

func validateSecretName(fl validator.FieldLevel) bool {
	return IsValidSecretName(fl.Field().String())
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "lte":
		return field + " must be at most " + fe.Param()
	case "base64":
		return field + " must be base64 encoded"
	case TagOwner:
		return field + " must be a GitHub account name"
	case TagRepo:
		return field + " must be a GitHub repository name"
	case TagSecretName:
		return field + " may only contain letters, digits and underscores, must not start with a digit or GITHUB_"
	default:
		return field + " failed validation"
	}
}
