// Package report renders a dossier with its cited sources in a scrollable pane.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/logger"
)

const (
	headerTitle   = "Intelligence Report"
	headerMarking = "CONFIDENTIAL // INTERNAL USE ONLY"
	sourcesTitle  = "Verified Sources"
)

// Report shows the narrative and the verified sources of one dossier.
type Report struct {
	styles   *styles.Styles
	viewport viewport.Model
	result   *domain.DossierResult
	wordWrap int
	width    int
	height   int
}

// NewReport creates an empty report pane. wordWrap is the markdown wrap
// column; non-positive values use domain.DefaultWordWrap.
func NewReport(s *styles.Styles, wordWrap int) *Report {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if wordWrap <= 0 {
		wordWrap = domain.DefaultWordWrap
	}

	return &Report{
		styles:   s,
		viewport: viewport.New(80, 20),
		wordWrap: wordWrap,
		width:    80,
		height:   20,
	}
}

// Init initialises the report.
func (r *Report) Init() tea.Cmd {
	return nil
}

// Update forwards scrolling keys to the viewport.
func (r *Report) Update(msg tea.Msg) (*Report, tea.Cmd) {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View renders the visible part of the report.
func (r *Report) View() string {
	return r.viewport.View()
}

// SetResult replaces the displayed dossier and scrolls to the top.
func (r *Report) SetResult(result *domain.DossierResult) {
	r.result = result
	r.refresh()
	r.viewport.GotoTop()
}

// Result returns the displayed dossier.
func (r *Report) Result() *domain.DossierResult {
	return r.result
}

// SetDimensions resizes the pane and re-renders for the new width.
func (r *Report) SetDimensions(width, height int) {
	r.width = width
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = height
	r.refresh()
}

// PageUp scrolls up one page.
func (r *Report) PageUp() {
	r.viewport.PageUp()
}

// PageDown scrolls down one page.
func (r *Report) PageDown() {
	r.viewport.PageDown()
}

func (r *Report) refresh() {
	if r.result == nil {
		r.viewport.SetContent("")
		return
	}
	r.viewport.SetContent(r.render())
}

func (r *Report) render() string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(headerTitle))
	b.WriteString("  ")
	b.WriteString(r.styles.Error.Render(headerMarking))
	b.WriteString("\n")

	b.WriteString(RenderMarkdown(r.result.Text, r.wrapWidth()))

	if r.result.HasSources() {
		b.WriteString("\n")
		b.WriteString(r.styles.Label.Render(sourcesTitle))
		b.WriteString("\n")
		for i, src := range r.result.Sources {
			b.WriteString(r.renderSource(i+1, src))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (r *Report) renderSource(n int, src domain.Source) string {
	title := r.styles.Normal.Render(fmt.Sprintf("[%d] %s", n, src.DisplayTitle()))
	host := r.styles.Subtitle.Render(src.Host())
	return title + "\n    " + host
}

func (r *Report) wrapWidth() int {
	if r.width > 0 && r.width < r.wordWrap {
		return r.width
	}
	return r.wordWrap
}

// RenderMarkdown renders markdown for the terminal. The raw text is returned
// when the renderer cannot be built or fails.
func RenderMarkdown(text string, wordWrap int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		logger.Debug("markdown renderer unavailable: %v", err)
		return text
	}

	out, err := renderer.Render(text)
	if err != nil {
		logger.Debug("markdown render failed: %v", err)
		return text
	}
	return out
}
