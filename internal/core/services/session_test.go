package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driven"
)

// countingAnalysis implements driving.AnalysisService for testing.
type countingAnalysis struct {
	mu     sync.Mutex
	calls  int
	inputs []string
	result *domain.DossierResult
	err    error

	// started receives once per call; release unblocks the call.
	started chan struct{}
	release chan struct{}
}

func (c *countingAnalysis) Analyze(_ context.Context, input string) (*domain.DossierResult, error) {
	c.mu.Lock()
	c.calls++
	c.inputs = append(c.inputs, input)
	c.mu.Unlock()

	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.result != nil {
		return c.result, nil
	}
	return &domain.DossierResult{Text: "dossier on " + input, Sources: []domain.Source{}}, nil
}

func (c *countingAnalysis) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fixedClock implements driven.Clock for testing.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

var _ driven.Clock = fixedClock{}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestSession(a *countingAnalysis) *Session {
	return NewSession(a,
		WithClock(fixedClock{t: time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local)}),
		WithIDGenerator(sequentialIDs()),
	)
}

func TestNewSession_StartsIdle(t *testing.T) {
	s := NewSession(&countingAnalysis{})

	snap := s.Snapshot()
	assert.Equal(t, domain.ViewIdle, snap.State)
	assert.False(t, snap.CanSubmit)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.History)
}

func TestSession_CanSubmit(t *testing.T) {
	s := newTestSession(&countingAnalysis{})

	assert.False(t, s.CanSubmit())

	s.SetInput("   \n ")
	assert.False(t, s.CanSubmit(), "whitespace-only input must not be submittable")

	s.SetInput("Ada Lovelace")
	assert.True(t, s.CanSubmit())

	s.ClearInput()
	assert.False(t, s.CanSubmit())
	assert.Equal(t, "", s.Snapshot().Input)
}

func TestSession_Submit_Success(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)
	s.SetInput("Ada Lovelace\nEnglish mathematician")

	result, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, a.count())
	assert.Equal(t, "dossier on Ada Lovelace\nEnglish mathematician", result.Text)

	snap := s.Snapshot()
	assert.Equal(t, domain.ViewResult, snap.State)
	assert.Same(t, result, snap.Result)
	assert.Empty(t, snap.ErrorMessage)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "id-1", snap.History[0].ID)
	assert.Equal(t, "Ada Lovelace", snap.History[0].Label)
	assert.Equal(t, "2:05:09 PM", snap.History[0].Timestamp)
	assert.Same(t, result, snap.History[0].Result)
	assert.True(t, snap.CanSubmit, "input is kept after a successful analysis")
}

func TestSession_Submit_Failure(t *testing.T) {
	a := &countingAnalysis{err: &domain.ProviderError{Message: "quota exceeded"}}
	s := newTestSession(a)
	s.SetInput("Ada Lovelace")

	result, err := s.Submit(context.Background())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Equal(t, 1, a.count())

	snap := s.Snapshot()
	assert.Equal(t, domain.ViewError, snap.State)
	assert.Equal(t, "quota exceeded", snap.ErrorMessage)
	assert.Empty(t, snap.History, "failures never enter history")
}

func TestSession_Submit_MissingCredential(t *testing.T) {
	model := &mockResearchModel{response: &driven.ResearchResponse{Text: "never"}}
	svc, factory := newTestAnalysis("", model)
	s := NewSession(svc)
	s.SetInput("Ada Lovelace")

	_, err := s.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Zero(t, factory.created)
	assert.Zero(t, model.calls())
	snap := s.Snapshot()
	assert.Equal(t, domain.ViewError, snap.State)
	assert.Equal(t, "GEMINI_API_KEY is not set", snap.ErrorMessage)
}

func TestSession_Submit_BlankInputRejected(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)
	s.SetInput("  ")

	_, err := s.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Zero(t, a.count())
	assert.Equal(t, domain.ViewIdle, s.Snapshot().State)

	// The slot must have been released.
	s.SetInput("Ada")
	_, err = s.Submit(context.Background())
	assert.NoError(t, err)
}

func TestSession_NewSubmitClearsPreviousError(t *testing.T) {
	a := &countingAnalysis{err: errors.New("boom")}
	s := newTestSession(a)
	s.SetInput("Ada")
	_, _ = s.Submit(context.Background())
	require.Equal(t, "boom", s.Snapshot().ErrorMessage)

	_, err := s.Begin()
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, domain.ViewAnalyzing, snap.State)
	assert.Empty(t, snap.ErrorMessage)
	assert.False(t, snap.CanSubmit)
}

func TestSession_SingleFlight(t *testing.T) {
	a := &countingAnalysis{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := newTestSession(a)
	s.SetInput("Ada")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-a.started

	assert.False(t, s.CanSubmit())
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAnalysisInProgress)
	_, err = s.Begin()
	assert.ErrorIs(t, err, domain.ErrAnalysisInProgress)

	close(a.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, a.count())
	assert.Equal(t, domain.ViewResult, s.Snapshot().State)
	assert.True(t, s.CanSubmit())
}

func TestSession_SubmitText(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)
	s.SetInput("draft")

	result, err := s.SubmitText(context.Background(), "Grace Hopper\nadmiral")

	require.NoError(t, err)
	assert.Equal(t, "dossier on Grace Hopper\nadmiral", result.Text)
	snap := s.Snapshot()
	assert.Equal(t, "Grace Hopper\nadmiral", snap.Input)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "Grace Hopper", snap.History[0].Label)
}

func TestSession_SubmitText_BlankKeepsInput(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)
	s.SetInput("draft")

	_, err := s.SubmitText(context.Background(), " \n ")

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Zero(t, a.count())
	assert.Equal(t, "draft", s.Snapshot().Input)

	_, err = s.SubmitText(context.Background(), "Ada")
	assert.NoError(t, err, "the slot must have been released")
}

func TestSession_SubmitText_BusyKeepsInFlightInput(t *testing.T) {
	a := &countingAnalysis{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := newTestSession(a)

	done := make(chan error, 1)
	go func() {
		_, err := s.SubmitText(context.Background(), "Ada")
		done <- err
	}()
	<-a.started

	_, err := s.SubmitText(context.Background(), "Grace")
	assert.ErrorIs(t, err, domain.ErrAnalysisInProgress)
	assert.Equal(t, "Ada", s.Snapshot().Input)

	close(a.release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Equal(t, 1, a.count())
	require.Len(t, snap.History, 1)
	assert.Equal(t, "Ada", snap.History[0].Label)
	assert.Equal(t, "Ada", snap.Input)
}

func TestSession_BeginComplete(t *testing.T) {
	s := newTestSession(&countingAnalysis{})
	s.SetInput("Grace Hopper")

	req, err := s.Begin()
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", req.Input)

	result := &domain.DossierResult{Text: "r"}
	require.NoError(t, s.Complete(req, result, nil))

	snap := s.Snapshot()
	assert.Equal(t, domain.ViewResult, snap.State)
	assert.Same(t, result, snap.Result)
	require.Len(t, snap.History, 1)
}

func TestSession_Complete_WithoutBegin(t *testing.T) {
	s := newTestSession(&countingAnalysis{})

	err := s.Complete(domain.AnalysisRequest{Input: "x"}, &domain.DossierResult{}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.ViewIdle, s.Snapshot().State)
	assert.Empty(t, s.Snapshot().History)
}

func TestSession_Complete_NilResultUsesPlaceholder(t *testing.T) {
	s := newTestSession(&countingAnalysis{})
	s.SetInput("x")
	req, err := s.Begin()
	require.NoError(t, err)

	require.NoError(t, s.Complete(req, nil, nil))

	assert.Equal(t, domain.NoAnalysisText, s.Snapshot().Result.Text)
}

func TestSession_HistoryIsBounded(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)

	for i := 1; i <= 11; i++ {
		s.SetInput(fmt.Sprintf("Person %d", i))
		_, err := s.Submit(context.Background())
		require.NoError(t, err)
	}

	history := s.Snapshot().History
	require.Len(t, history, domain.HistoryCapacity)
	assert.Equal(t, "Person 11", history[0].Label, "newest first")
	assert.Equal(t, "Person 2", history[9].Label)
	for _, e := range history {
		assert.NotEqual(t, "Person 1", e.Label, "oldest entry must be evicted")
	}
	assert.Equal(t, 11, a.count())
}

func TestSession_SelectHistoryEntry(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)
	s.SetInput("First")
	first, err := s.Submit(context.Background())
	require.NoError(t, err)
	s.SetInput("Second")
	_, err = s.Submit(context.Background())
	require.NoError(t, err)

	before := s.Snapshot().History
	callsBefore := a.count()

	got1, err := s.SelectHistoryEntry("id-1")
	require.NoError(t, err)
	got2, err := s.SelectHistoryEntry("id-1")
	require.NoError(t, err)

	assert.Same(t, first, got1)
	assert.Same(t, got1, got2)
	assert.Equal(t, callsBefore, a.count(), "selection must not start an analysis")

	snap := s.Snapshot()
	assert.Equal(t, domain.ViewResult, snap.State)
	assert.Same(t, first, snap.Result)
	assert.Equal(t, before, snap.History, "selection must not reorder history")
}

func TestSession_SelectHistoryEntry_FromError(t *testing.T) {
	a := &countingAnalysis{}
	s := newTestSession(a)
	s.SetInput("First")
	first, err := s.Submit(context.Background())
	require.NoError(t, err)

	a.err = errors.New("boom")
	_, _ = s.Submit(context.Background())
	require.Equal(t, domain.ViewError, s.Snapshot().State)

	got, err := s.SelectHistoryEntry("id-1")
	require.NoError(t, err)

	assert.Same(t, first, got)
	assert.Equal(t, domain.ViewResult, s.Snapshot().State)
}

func TestSession_SelectHistoryEntry_WhileAnalyzing(t *testing.T) {
	s := newTestSession(&countingAnalysis{})
	s.SetInput("First")
	first, err := s.Submit(context.Background())
	require.NoError(t, err)

	req, err := s.Begin()
	require.NoError(t, err)

	got, err := s.SelectHistoryEntry("id-1")
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, domain.ViewAnalyzing, s.Snapshot().State)

	require.NoError(t, s.Complete(req, &domain.DossierResult{Text: "later"}, nil))
	assert.Equal(t, "later", s.Snapshot().Result.Text)
}

func TestSession_SelectHistoryEntry_Unknown(t *testing.T) {
	s := newTestSession(&countingAnalysis{})

	_, err := s.SelectHistoryEntry("missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ViewIdle, s.Snapshot().State)
}

func TestSession_ClearInputKeepsResultAndHistory(t *testing.T) {
	s := newTestSession(&countingAnalysis{})
	s.SetInput("Ada")
	result, err := s.Submit(context.Background())
	require.NoError(t, err)

	s.ClearInput()

	snap := s.Snapshot()
	assert.Empty(t, snap.Input)
	assert.Same(t, result, snap.Result)
	assert.Len(t, snap.History, 1)
	assert.Equal(t, domain.ViewResult, snap.State)
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := newTestSession(&countingAnalysis{})
	s.SetInput("Ada")
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.History[0].Label = "mutated"

	assert.Equal(t, "Ada", s.Snapshot().History[0].Label)
}

func TestSession_UUIDsByDefault(t *testing.T) {
	s := NewSession(&countingAnalysis{})
	s.SetInput("Ada")
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	id := s.Snapshot().History[0].ID
	assert.Len(t, id, 36)
}
