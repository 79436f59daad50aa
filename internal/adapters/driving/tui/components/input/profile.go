// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the input is empty.
const Placeholder = "Enter name, social media handles, or raw text about the person..."

const (
	defaultWidth  = 50
	defaultHeight = 8
	minWidth      = 20
)

// ProfileInput wraps a bubbles textarea for free text about a person.
type ProfileInput struct {
	textarea textarea.Model
	styles   *styles.Styles
	width    int
}

// NewProfileInput creates a new focused profile input.
func NewProfileInput(s *styles.Styles) *ProfileInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth)
	ta.SetHeight(defaultHeight)
	ta.Focus()

	return &ProfileInput{
		textarea: ta,
		styles:   s,
		width:    defaultWidth,
	}
}

// Init initialises the profile input.
func (p *ProfileInput) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input messages.
func (p *ProfileInput) Update(msg tea.Msg) (*ProfileInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textarea, cmd = p.textarea.Update(msg)
	return p, cmd
}

// View renders the input under its caption.
func (p *ProfileInput) View() string {
	label := p.styles.Label.Render("Target Identification")
	field := p.styles.InputField.Render(p.textarea.View())
	return lipgloss.JoinVertical(lipgloss.Left, label, field)
}

// Value returns the current text.
func (p *ProfileInput) Value() string {
	return p.textarea.Value()
}

// SetValue replaces the text.
func (p *ProfileInput) SetValue(value string) {
	p.textarea.SetValue(value)
}

// Focus sets focus on the input.
func (p *ProfileInput) Focus() tea.Cmd {
	return p.textarea.Focus()
}

// Blur removes focus from the input.
func (p *ProfileInput) Blur() {
	p.textarea.Blur()
}

// Focused returns whether the input is focused.
func (p *ProfileInput) Focused() bool {
	return p.textarea.Focused()
}

// SetDimensions sizes the text area, leaving room for the border.
func (p *ProfileInput) SetDimensions(width, height int) {
	p.width = width
	inner := width - 4
	if inner < minWidth {
		inner = minWidth
	}
	p.textarea.SetWidth(inner)
	if height > 2 {
		p.textarea.SetHeight(height)
	}
}

// Width returns the current width.
func (p *ProfileInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *ProfileInput) Reset() {
	p.textarea.Reset()
}
