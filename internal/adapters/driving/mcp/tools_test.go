package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelbloop/dossier/internal/core/domain"
)

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the dossier and records history", func(t *testing.T) {
		analysis := &stubAnalysis{result: sampleResult()}
		server, session := newTestServer(analysis)

		_, out, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Ada Lovelace\nmathematician"})
		require.NoError(t, err)

		assert.Equal(t, sampleResult().Text, out.Text)
		require.Len(t, out.Sources, 2)
		assert.Equal(t, "Ada Lovelace - Wikipedia", out.Sources[0].Title)
		assert.Equal(t, "en.wikipedia.org", out.Sources[0].Host)
		assert.Equal(t, "Source Link", out.Sources[1].Title)
		assert.Equal(t, "example.org", out.Sources[1].Host)

		assert.Equal(t, 1, analysis.Calls())
		assert.Equal(t, []string{"Ada Lovelace\nmathematician"}, analysis.inputs)

		snap := session.Snapshot()
		assert.Equal(t, domain.ViewResult, snap.State)
		require.Len(t, snap.History, 1)
		assert.Equal(t, "Ada Lovelace", snap.History[0].Label)
	})

	t.Run("blank text is rejected without a call", func(t *testing.T) {
		analysis := &stubAnalysis{result: sampleResult()}
		server, _ := newTestServer(analysis)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "  \n "})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
		assert.Zero(t, analysis.Calls())
	})

	t.Run("provider failure is returned", func(t *testing.T) {
		analysis := &stubAnalysis{err: domain.NewProviderError(errors.New("quota exceeded"))}
		server, session := newTestServer(analysis)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Grace Hopper"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProvider)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Equal(t, domain.ViewError, session.Snapshot().State)
		assert.Empty(t, session.Snapshot().History)
	})

	t.Run("empty provider result becomes the placeholder", func(t *testing.T) {
		server, _ := newTestServer(&stubAnalysis{})

		_, out, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Someone"})
		require.NoError(t, err)
		assert.Equal(t, domain.NoAnalysisText, out.Text)
		assert.Empty(t, out.Sources)
	})
}

func TestServer_handleSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a retained result without a new call", func(t *testing.T) {
		analysis := &stubAnalysis{result: sampleResult()}
		server, _ := newTestServer(analysis)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Ada"})
		require.NoError(t, err)

		for range 2 {
			_, out, err := server.handleSelect(ctx, nil, SelectInput{ID: "entry-1"})
			require.NoError(t, err)
			assert.Equal(t, sampleResult().Text, out.Text)
		}
		assert.Equal(t, 1, analysis.Calls())
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		server, _ := newTestServer(&stubAnalysis{})

		_, _, err := server.handleSelect(ctx, nil, SelectInput{ID: "missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestToOutput_Nil(t *testing.T) {
	out := toOutput(nil)
	assert.Equal(t, domain.NoAnalysisText, out.Text)
	assert.NotNil(t, out.Sources)
}
