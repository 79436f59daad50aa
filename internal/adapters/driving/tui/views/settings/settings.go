// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/messages"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionEdit
)

// Field identifies an editable setting.
type Field int

const (
	FieldModel Field = iota
	FieldAPIKeyEnv
	fieldCount
)

// Label returns the display name of the field.
func (f Field) Label() string {
	switch f {
	case FieldModel:
		return "Model"
	case FieldAPIKeyEnv:
		return "API key variable"
	default:
		return "Unknown"
	}
}

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	saved    bool

	// Navigation state
	section  Section
	selected int

	editor textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	editor := textinput.New()
	editor.CharLimit = 128

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		editor:          editor,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = false
			return v, nil
		}
		v.err = nil
		v.saved = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.section == SectionEdit {
		return v.handleEditKeys(msg)
	}

	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < int(fieldCount)-1 {
			v.selected++
		}
	case keyEnter:
		v.startEdit()
		return v, textinput.Blink
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEdit()
		return v, nil
	case keyEnter:
		value := v.editor.Value()
		field := Field(v.selected)
		v.stopEdit()
		return v, v.save(field, value)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) startEdit() {
	v.section = SectionEdit
	v.saved = false
	v.editor.SetValue(v.currentValue(Field(v.selected)))
	v.editor.CursorEnd()
	v.editor.Focus()
}

func (v *View) stopEdit() {
	v.section = SectionOverview
	v.editor.Blur()
}

// save returns a command that persists one field.
func (v *View) save(field Field, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		var err error
		switch field {
		case FieldModel:
			err = svc.SetModel(value)
		case FieldAPIKeyEnv:
			err = svc.SetAPIKeyEnv(value)
		default:
			err = fmt.Errorf("%w: field %d", domain.ErrInvalidInput, field)
		}
		return messages.SettingsSaved{Err: err}
	}
}

func (v *View) currentValue(field Field) string {
	if v.settings == nil {
		return ""
	}
	switch field {
	case FieldModel:
		return v.settings.Provider.Model
	case FieldAPIKeyEnv:
		return v.settings.Provider.APIKeyEnv
	default:
		return ""
	}
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.styles.Label.Render("Provider"))
	b.WriteString("\n")
	for i := Field(0); i < fieldCount; i++ {
		b.WriteString(v.renderField(i))
		b.WriteString("\n")
	}

	if v.section == SectionEdit {
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.editor.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Web"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Address:  %s", v.settings.Web.Addr)))
	b.WriteString("\n")
	origins := "same-origin only"
	if len(v.settings.Web.AllowedOrigins) > 0 {
		origins = strings.Join(v.settings.Web.AllowedOrigins, ", ")
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Origins:  %s", origins)))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Label.Render("Terminal"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Word wrap: %d", v.settings.UI.WordWrap)))
	b.WriteString("\n\n")

	if v.saved {
		b.WriteString(v.styles.Success.Render("Saved"))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderField(field Field) string {
	indicator := "  "
	if int(field) == v.selected {
		indicator = "> "
	}

	line := fmt.Sprintf("%s%-18s %s", indicator, field.Label()+":", v.currentValue(field))
	if int(field) == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

func (v *View) renderHelp() string {
	if v.section == SectionEdit {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.editor.Width = width - 8
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the last loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.saved = false
	v.editor.SetValue("")
	v.editor.Blur()
}
