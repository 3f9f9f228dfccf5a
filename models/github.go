package models

// Owner is the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"`
}

// Repository is the subset of the GitHub repository resource the flow reads.
type Repository struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Owner           Owner  `json:"owner"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	DefaultBranch   string `json:"default_branch"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
	ContributorsURL string `json:"contributors_url"`
	Archived        bool   `json:"archived"`
}

// Contributor is one entry of the repository contributors listing.
type Contributor struct {
	Login         string `json:"login"`
	ID            int64  `json:"id"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

// ActionsPublicKey is the repository key GitHub Actions secrets are sealed with.
type ActionsPublicKey struct {
	KeyID string `json:"key_id"`
	// Key is the base64-encoded Curve25519 public key.
	Key string `json:"key"`
}

// EncryptedSecret is the body of an Actions secret upsert.
type EncryptedSecret struct {
	Name           string `json:"-" validate:"required,secret_name"`
	EncryptedValue string `json:"encrypted_value" validate:"required,base64"`
	KeyID          string `json:"key_id" validate:"required"`
}
