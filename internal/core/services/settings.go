package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driven"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyProviderModel  = "provider.model"
	keyProviderKeyEnv = "provider.api_key_env"
	keyWebAddr        = "web.addr"
	keyWebOrigins     = "web.allowed_origins"
	keyUIWordWrap     = "ui.word_wrap"
)

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Provider: domain.ProviderSettings{
			Model:     s.getString(keyProviderModel, defaults.Provider.Model),
			APIKeyEnv: s.getEnvName(defaults.Provider.APIKeyEnv),
		},
		Web: domain.WebSettings{
			Addr:           s.getString(keyWebAddr, defaults.Web.Addr),
			AllowedOrigins: s.configStore.GetStringSlice(keyWebOrigins),
		},
		UI: domain.UISettings{
			WordWrap: s.getPositiveInt(keyUIWordWrap, defaults.UI.WordWrap),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}

	// Save provider settings
	if err := s.configStore.Set(keyProviderModel, settings.Provider.Model); err != nil {
		return fmt.Errorf("save provider model: %w", err)
	}
	if err := s.configStore.Set(keyProviderKeyEnv, settings.Provider.APIKeyEnv); err != nil {
		return fmt.Errorf("save provider api_key_env: %w", err)
	}

	// Save web settings
	if err := s.configStore.Set(keyWebAddr, settings.Web.Addr); err != nil {
		return fmt.Errorf("save web addr: %w", err)
	}
	if len(settings.Web.AllowedOrigins) > 0 {
		if err := s.configStore.Set(keyWebOrigins, settings.Web.AllowedOrigins); err != nil {
			return fmt.Errorf("save web allowed_origins: %w", err)
		}
	}

	// Save UI settings
	if err := s.configStore.Set(keyUIWordWrap, settings.UI.WordWrap); err != nil {
		return fmt.Errorf("save ui word_wrap: %w", err)
	}

	return nil
}

// SetModel updates the provider model identifier.
func (s *SettingsService) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("%w: model is empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Provider.Model = model

	return s.Save(settings)
}

// SetAPIKeyEnv updates the environment variable the credential is read from.
func (s *SettingsService) SetAPIKeyEnv(name string) error {
	name = strings.TrimSpace(name)
	if !envNamePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid environment variable name %q", domain.ErrInvalidInput, name)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Provider.APIKeyEnv = name

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Model returns the configured model identifier.
func (s *SettingsService) Model() string {
	return s.getString(keyProviderModel, domain.DefaultModel)
}

// APIKeyEnv returns the configured credential variable name.
func (s *SettingsService) APIKeyEnv() string {
	return s.getEnvName(domain.DefaultAPIKeyEnv)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getEnvName(defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(keyProviderKeyEnv))
	if !envNamePattern.MatchString(val) {
		return defaultVal
	}
	return val
}
