package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driven"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
	"github.com/angelbloop/dossier/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionController = (*Session)(nil)

// Session holds the interactive state of one user: the input text, the
// single in-flight analysis, the displayed result or error, and a bounded
// history. All mutation goes through its methods.
type Session struct {
	analysis driving.AnalysisService
	clock    driven.Clock
	newID    func() string

	// slot admits one analysis at a time; extra submits are rejected.
	slot *semaphore.Weighted

	mu       sync.RWMutex
	input    string
	state    domain.ViewState
	inFlight bool
	result   *domain.DossierResult
	errMsg   string
	history  *domain.History
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock sets the clock used to timestamp history entries.
func WithClock(c driven.Clock) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator sets the function producing history entry IDs.
func WithIDGenerator(fn func() string) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithHistoryCapacity overrides the number of retained history entries.
func WithHistoryCapacity(n int) SessionOption {
	return func(s *Session) {
		s.history = domain.NewHistory(n)
	}
}

// NewSession creates an idle session backed by analysis.
func NewSession(analysis driving.AnalysisService, opts ...SessionOption) *Session {
	s := &Session{
		analysis: analysis,
		clock:    driven.SystemClock{},
		newID:    uuid.NewString,
		slot:     semaphore.NewWeighted(1),
		state:    domain.ViewIdle,
		history:  domain.NewHistory(domain.HistoryCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetInput replaces the input text.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// ClearInput empties the input only.
func (s *Session) ClearInput() {
	s.SetInput("")
}

// CanSubmit reports whether the input is non-blank and nothing is in flight.
func (s *Session) CanSubmit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canSubmitLocked()
}

func (s *Session) canSubmitLocked() bool {
	return !s.inFlight && !domain.IsBlank(s.input)
}

// Begin moves the session to Analyzing and returns the request to run.
// The previous error is cleared; the previous result stays until replaced.
func (s *Session) Begin() (domain.AnalysisRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginLocked(s.input)
}

// beginLocked claims the slot for text. The input is only replaced once
// the slot is held, so a rejected submit leaves the in-flight input alone.
func (s *Session) beginLocked(text string) (domain.AnalysisRequest, error) {
	if !s.slot.TryAcquire(1) {
		return domain.AnalysisRequest{}, domain.ErrAnalysisInProgress
	}

	req, err := domain.NewAnalysisRequest(text)
	if err != nil {
		s.slot.Release(1)
		return domain.AnalysisRequest{}, err
	}

	logger.Debug("session: %s -> %s", s.state, domain.ViewAnalyzing)
	s.input = text
	s.inFlight = true
	s.state = domain.ViewAnalyzing
	s.errMsg = ""

	return req, nil
}

// Complete records the outcome of the request returned by Begin.
// On success the result is displayed and recorded at the front of history;
// on failure the error message is displayed and history is untouched.
func (s *Session) Complete(req domain.AnalysisRequest, result *domain.DossierResult, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inFlight {
		return fmt.Errorf("%w: no analysis in flight", domain.ErrInvalidInput)
	}
	s.inFlight = false
	s.slot.Release(1)

	if err != nil {
		s.state = domain.ViewError
		s.errMsg = err.Error()
		logger.Debug("session: analysis failed: %s", s.errMsg)
		return nil
	}

	if result == nil {
		result = &domain.DossierResult{Text: domain.NoAnalysisText, Sources: []domain.Source{}}
	}
	s.state = domain.ViewResult
	s.result = result
	s.history.Push(domain.NewHistoryEntry(s.newID(), req.Input, s.clock.Now(), result))
	logger.Debug("session: result recorded, history=%d", s.history.Len())

	return nil
}

// Submit runs one analysis of the current input and waits for it.
// Exactly one call reaches the analysis service per accepted submit.
func (s *Session) Submit(ctx context.Context) (*domain.DossierResult, error) {
	req, err := s.Begin()
	if err != nil {
		return nil, err
	}
	return s.run(ctx, req)
}

// SubmitText replaces the input with text and starts its analysis as one
// step. A busy or blank submit leaves the current input unchanged.
func (s *Session) SubmitText(ctx context.Context, text string) (*domain.DossierResult, error) {
	s.mu.Lock()
	req, err := s.beginLocked(text)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.run(ctx, req)
}

func (s *Session) run(ctx context.Context, req domain.AnalysisRequest) (*domain.DossierResult, error) {
	result, err := s.analysis.Analyze(ctx, req.Input)
	if err == nil && result == nil {
		result = &domain.DossierResult{Text: domain.NoAnalysisText, Sources: []domain.Source{}}
	}
	if cerr := s.Complete(req, result, err); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SelectHistoryEntry displays the retained result of entry id.
// No analysis is started and history order is unchanged. While an analysis
// is in flight the session stays in Analyzing.
func (s *Session) SelectHistoryEntry(id string) (*domain.DossierResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.history.Find(id)
	if !ok {
		return nil, fmt.Errorf("history entry %q: %w", id, domain.ErrNotFound)
	}

	s.result = entry.Result
	if s.state != domain.ViewAnalyzing {
		s.state = domain.ViewResult
	}

	return entry.Result, nil
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.SessionSnapshot{
		State:        s.state,
		Input:        s.input,
		CanSubmit:    s.canSubmitLocked(),
		Result:       s.result,
		ErrorMessage: s.errMsg,
		History:      s.history.Entries(),
	}
}
