package domain

// Provider defaults.
const (
	// DefaultModel is the grounded model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	// DefaultAPIKeyEnv is the environment variable holding the provider credential.
	DefaultAPIKeyEnv = "GEMINI_API_KEY" //nolint:gosec // G101: variable name, not a credential.

	// DefaultWebAddr is the listen address for the web client.
	DefaultWebAddr = ":8080"

	// DefaultWordWrap is the markdown wrap width in the terminal.
	DefaultWordWrap = 80
)

// ProviderSettings holds model provider configuration.
// The credential itself is never stored; only the name of the variable holding it.
type ProviderSettings struct {
	// Model is the model identifier sent with each request.
	Model string

	// APIKeyEnv names the environment variable read at analysis time.
	APIKeyEnv string
}

// WebSettings holds configuration for the browser client.
type WebSettings struct {
	// Addr is the HTTP listen address.
	Addr string

	// AllowedOrigins lists origins permitted to call the JSON API.
	// Empty means same-origin only.
	AllowedOrigins []string
}

// UISettings holds terminal presentation settings.
type UISettings struct {
	// WordWrap is the column at which rendered markdown wraps.
	WordWrap int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Provider holds model provider settings.
	Provider ProviderSettings

	// Web holds browser client settings.
	Web WebSettings

	// UI holds terminal presentation settings.
	UI UISettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Provider: ProviderSettings{
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Web: WebSettings{
			Addr: DefaultWebAddr,
		},
		UI: UISettings{
			WordWrap: DefaultWordWrap,
		},
	}
}
