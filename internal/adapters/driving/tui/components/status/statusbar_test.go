package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/keymap"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.SourceCount())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_ReadyShowsModel(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetModel("gemini-2.5-flash")

	view := bar.View()
	assert.Contains(t, view, "System Online")
	assert.Contains(t, view, "gemini-2.5-flash")
	assert.Contains(t, view, "ctrl+s: analyze")
}

func TestStatusBar_States(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Bar)
		want  string
	}{
		{
			name:  "analyzing",
			setup: func(b *Bar) { b.SetState(StateAnalyzing) },
			want:  "Analyzing Data...",
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("GEMINI_API_KEY is not set")
			},
			want: "Error: GEMINI_API_KEY is not set",
		},
		{
			name:  "error without message",
			setup: func(b *Bar) { b.SetState(StateError) },
			want:  "Error",
		},
		{
			name: "result",
			setup: func(b *Bar) {
				b.SetState(StateResult)
				b.SetSourceCount(4)
			},
			want: "4 sources",
		},
		{
			name:  "help",
			setup: func(b *Bar) { b.SetState(StateHelp) },
			want:  "Help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			tt.setup(bar)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_HistoryHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateHistory)

	view := bar.View()
	assert.Contains(t, view, "enter: open")
	assert.NotContains(t, view, "ctrl+s")
}

func TestStatusBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
	assert.Equal(t, 10, bar.Width())
}

func TestStatusBar_ClearKeepsModel(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetModel("gemini-2.5-pro")
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetSourceCount(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.SourceCount())
	assert.Equal(t, "gemini-2.5-pro", bar.Model())
}
