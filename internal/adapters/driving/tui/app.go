package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/keymap"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/messages"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/views/analysis"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/views/menu"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/views/settings"
	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	analysisView *analysis.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// The analysis view is shown first.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	cfg := domain.DefaultAppSettings()
	if ports.Settings != nil {
		if loaded, err := ports.Settings.Get(); err != nil {
			logger.Warn("loading settings: %v", err)
		} else if loaded != nil {
			cfg = *loaded
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	analysisView := analysis.NewView(s, km, ports.Session, ports.Analysis, cfg.UI.WordWrap)
	analysisView.SetModelName(cfg.Provider.Model)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		analysisView: analysisView,
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewAnalysis,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.analysisView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("dossier - Persona Dossier"),
		a.analysisView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	// Analysis outcomes belong to the session regardless of the visible view.
	case messages.AnalysisCompleted, messages.HistorySelected, spinner.TickMsg:
		a.analysisView, cmd = a.analysisView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewAnalysis:
			return a, a.analysisView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		a.refreshModel()
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewAnalysis {
			a.analysisView, cmd = a.analysisView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAnalysis:
		a.analysisView, cmd = a.analysisView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		if key.Matches(msg, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAnalysis:
		a.analysisView, cmd = a.analysisView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if key.Matches(msg, a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// refreshModel shows the saved model identifier in the analysis header.
func (a *App) refreshModel() {
	if a.ports.Settings == nil {
		return
	}
	cfg, err := a.ports.Settings.Get()
	if err != nil || cfg == nil {
		return
	}
	a.analysisView.SetModelName(cfg.Provider.Model)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewAnalysis:
		return a.analysisView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, row := range a.keymap.FullHelp() {
		for _, binding := range row {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render("Menu: j/k navigate, enter select, q quit"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Snapshot returns the session state shown by the analysis view.
func (a *App) Snapshot() domain.SessionSnapshot {
	return a.analysisView.Snapshot()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.analysisView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
