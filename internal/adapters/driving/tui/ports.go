// Package tui provides an interactive terminal user interface for dossier.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/angelbloop/dossier/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns input, view state and history.
	Session driving.SessionController

	// Analysis runs one grounded analysis.
	Analysis driving.AnalysisService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionController,
	analysis driving.AnalysisService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Session:  session,
		Analysis: analysis,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
