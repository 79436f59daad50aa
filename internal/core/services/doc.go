// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - AnalysisService: one grounded model call per analysis, normalised into a DossierResult
//   - Session: the state machine behind every interactive surface
//   - SettingsService: typed access to the TOML configuration
//
// Services are pure Go with no CGO; they reach the outside world only through driven ports.
package services
