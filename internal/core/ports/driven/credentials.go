package driven

// CredentialProvider supplies the provider API key.
// Implementations read the credential on every call so a key exported
// after startup is picked up by the next analysis.
type CredentialProvider interface {
	// APIKey returns the credential, or an empty string when none is available.
	APIKey() string

	// Name describes where the credential is read from (e.g. an environment variable).
	Name() string
}
