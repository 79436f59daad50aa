package driving

import "github.com/angelbloop/dossier/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetModel updates the provider model identifier.
	SetModel(model string) error

	// SetAPIKeyEnv updates the environment variable the credential is read from.
	SetAPIKeyEnv(name string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
