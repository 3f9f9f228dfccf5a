package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/secret_sealer_mock.go -package=mock

// SecretSealer encrypts secret values for a recipient that publishes a
// Curve25519 public key, the way GitHub Actions expects repository secrets.
type SecretSealer interface {
	// Seal encrypts plaintext with the base64-encoded public key and returns
	// the base64-encoded sealed box.
	Seal(publicKeyB64 string, plaintext []byte) (string, error)
}
