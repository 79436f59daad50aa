package driving

import (
	"context"

	"github.com/angelbloop/dossier/internal/core/domain"
)

// SessionController owns the interactive state of one user session.
// Its methods are the only way to mutate that state.
type SessionController interface {
	// SetInput replaces the input text.
	SetInput(text string)

	// ClearInput empties the input. Result, error and history are untouched.
	ClearInput()

	// CanSubmit reports whether the input is non-blank and nothing is in flight.
	CanSubmit() bool

	// Begin moves to Analyzing and returns the request to run.
	// Fails with domain.ErrEmptyInput or domain.ErrAnalysisInProgress.
	Begin() (domain.AnalysisRequest, error)

	// Complete records the outcome of the request returned by Begin.
	Complete(req domain.AnalysisRequest, result *domain.DossierResult, err error) error

	// Submit runs Begin, one analysis and Complete synchronously.
	Submit(ctx context.Context) (*domain.DossierResult, error)

	// SubmitText sets the input to text and submits it under one lock.
	// When refused the input is left as it was.
	SubmitText(ctx context.Context, text string) (*domain.DossierResult, error)

	// SelectHistoryEntry displays a retained result without a new analysis.
	SelectHistoryEntry(id string) (*domain.DossierResult, error)

	// Snapshot returns a copy of the current state.
	Snapshot() domain.SessionSnapshot
}
