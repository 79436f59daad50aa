// Package web provides a browser client and JSON API for dossier.
// It implements a driving adapter following hexagonal architecture principles.
package web

import (
	"github.com/angelbloop/dossier/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the web adapter.
type Ports struct {
	// Session owns input, view state and history.
	Session driving.SessionController

	// Settings supplies the model shown in the page header. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
