package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelbloop/dossier/internal/adapters/driven/storage/memory"
	"github.com/angelbloop/dossier/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Provider.Model, settings.Provider.Model)
	assert.Equal(t, defaults.Provider.APIKeyEnv, settings.Provider.APIKeyEnv)
	assert.Equal(t, defaults.Web.Addr, settings.Web.Addr)
	assert.Empty(t, settings.Web.AllowedOrigins)
	assert.Equal(t, defaults.UI.WordWrap, settings.UI.WordWrap)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("provider.model", "gemini-2.5-pro")
	_ = store.Set("provider.api_key_env", "DOSSIER_KEY")
	_ = store.Set("web.addr", "127.0.0.1:9000")
	_ = store.Set("web.allowed_origins", []any{"https://a.example", "https://b.example"})
	_ = store.Set("ui.word_wrap", int64(100))

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", settings.Provider.Model)
	assert.Equal(t, "DOSSIER_KEY", settings.Provider.APIKeyEnv)
	assert.Equal(t, "127.0.0.1:9000", settings.Web.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, settings.Web.AllowedOrigins)
	assert.Equal(t, 100, settings.UI.WordWrap)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("provider.model", "   ")
	_ = store.Set("provider.api_key_env", "NOT A VAR")
	_ = store.Set("ui.word_wrap", -5)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Provider.Model, settings.Provider.Model)
	assert.Equal(t, defaults.Provider.APIKeyEnv, settings.Provider.APIKeyEnv)
	assert.Equal(t, defaults.UI.WordWrap, settings.UI.WordWrap)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := &domain.AppSettings{
		Provider: domain.ProviderSettings{Model: "gemini-2.0-flash", APIKeyEnv: "MY_KEY"},
		Web:      domain.WebSettings{Addr: ":9090", AllowedOrigins: []string{"https://x.example"}},
		UI:       domain.UISettings{WordWrap: 120},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestSettingsService_Save_Nil(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.Save(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetModel(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetModel(" gemini-2.5-pro "))
	assert.Equal(t, "gemini-2.5-pro", service.Model())
	assert.Equal(t, "gemini-2.5-pro", store.GetString("provider.model"))

	err := service.SetModel("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "gemini-2.5-pro", service.Model())
}

func TestSettingsService_SetAPIKeyEnv(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetAPIKeyEnv("DOSSIER_GEMINI_KEY"))
	assert.Equal(t, "DOSSIER_GEMINI_KEY", service.APIKeyEnv())

	for _, bad := range []string{"", "1ABC", "HAS SPACE", "A-B"} {
		err := service.SetAPIKeyEnv(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "name %q", bad)
	}
	assert.Equal(t, "DOSSIER_GEMINI_KEY", service.APIKeyEnv())
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
