// Package analysis provides the main dossier view for the TUI.
package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/components/input"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/components/list"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/components/report"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/components/status"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/keymap"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/messages"
	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
	"github.com/angelbloop/dossier/internal/logger"
)

const (
	sidebarMinWidth = 32
	headerHeight    = 4
	footerHeight    = 2
)

// View is the dossier workspace: input and history on the left, the report
// pane on the right, and a status bar underneath.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.ProfileInput
	history   *list.HistoryList
	report    *report.Report
	spinner   spinner.Model
	statusbar *status.Bar

	session  driving.SessionController
	analysis driving.AnalysisService
	ctx      context.Context
	now      func() time.Time

	snapshot     domain.SessionSnapshot
	model        string
	width        int
	height       int
	ready        bool
	focusHistory bool
}

// NewView creates a new analysis view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SessionController,
	analysis driving.AnalysisService,
	wordWrap int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewProfileInput(s),
		history:   list.NewHistoryList(s),
		report:    report.NewReport(s, wordWrap),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Subtitle)),
		statusbar: status.NewBar(s, km),
		session:   session,
		analysis:  analysis,
		ctx:       context.Background(),
		now:       time.Now,
		width:     80,
		height:    24,
	}
	v.sync()
	return v
}

// WithContext sets the context used for analyses.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetModelName sets the model identifier shown in the header.
func (v *View) SetModelName(model string) {
	v.model = model
	v.statusbar.SetModel(model)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the analysis view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnalysisCompleted:
		v.handleAnalysisCompleted(msg)
		return v, nil

	case messages.HistorySelected:
		v.handleHistorySelected(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		if v.snapshot.State != domain.ViewAnalyzing {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case key.Matches(msg, v.keymap.Submit):
		return v, v.submit()

	case key.Matches(msg, v.keymap.Clear):
		v.input.Reset()
		if v.session != nil {
			v.session.ClearInput()
		}
		v.sync()
		return v, nil

	case key.Matches(msg, v.keymap.Focus):
		v.toggleFocus()
		return v, nil

	case key.Matches(msg, v.keymap.PageUp):
		v.report.PageUp()
		return v, nil

	case key.Matches(msg, v.keymap.PageDown):
		v.report.PageDown()
		return v, nil
	}

	if v.focusHistory {
		return v.handleHistoryKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.session != nil {
		v.session.SetInput(v.input.Value())
	}
	v.sync()
	return v, cmd
}

func (v *View) handleHistoryKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Select) {
		entry := v.history.SelectedEntry()
		if entry == nil {
			return v, nil
		}
		id := entry.ID
		return v, func() tea.Msg {
			return messages.HistorySelected{ID: id}
		}
	}

	v.history, _ = v.history.Update(msg)
	return v, nil
}

func (v *View) toggleFocus() {
	v.focusHistory = !v.focusHistory
	if v.focusHistory {
		v.input.Blur()
		v.history.Focus()
	} else {
		v.history.Blur()
		v.input.Focus()
	}
	v.updateStatus()
}

// submit starts an analysis of the current input. It returns nil when the
// session refuses the request.
func (v *View) submit() tea.Cmd {
	if v.session == nil {
		return errorCmd(ErrNoSession)
	}
	if v.analysis == nil {
		return errorCmd(ErrNoAnalysisService)
	}

	v.session.SetInput(v.input.Value())
	req, err := v.session.Begin()
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisInProgress) {
			v.statusbar.SetMessage(err.Error())
		}
		logger.Debug("submit refused: %v", err)
		return nil
	}

	v.sync()
	return tea.Batch(v.spinner.Tick, v.performAnalysis(req))
}

// performAnalysis runs one analysis off the update loop.
func (v *View) performAnalysis(req domain.AnalysisRequest) tea.Cmd {
	ctx := v.ctx
	analysis := v.analysis
	return func() tea.Msg {
		result, err := analysis.Analyze(ctx, req.Input)
		return messages.AnalysisCompleted{Request: req, Result: result, Err: err}
	}
}

func (v *View) handleAnalysisCompleted(msg messages.AnalysisCompleted) {
	if v.session == nil {
		return
	}
	if err := v.session.Complete(msg.Request, msg.Result, msg.Err); err != nil {
		logger.Warn("discarding analysis outcome: %v", err)
	}
	v.sync()
}

func (v *View) handleHistorySelected(msg messages.HistorySelected) {
	if v.session == nil {
		return
	}
	if _, err := v.session.SelectHistoryEntry(msg.ID); err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return
	}
	v.sync()
}

// sync copies session state into the components.
func (v *View) sync() {
	if v.session == nil {
		return
	}
	prev := v.snapshot.Result
	v.snapshot = v.session.Snapshot()
	v.history.SetEntries(v.snapshot.History)
	if v.snapshot.Result != prev {
		v.report.SetResult(v.snapshot.Result)
	}
	v.updateStatus()
}

func (v *View) updateStatus() {
	v.statusbar.SetMessage(v.snapshot.ErrorMessage)
	v.statusbar.SetSourceCount(0)
	if v.snapshot.Result != nil {
		v.statusbar.SetSourceCount(len(v.snapshot.Result.Sources))
	}

	switch {
	case v.snapshot.State == domain.ViewAnalyzing:
		v.statusbar.SetState(status.StateAnalyzing)
	case v.focusHistory:
		v.statusbar.SetState(status.StateHistory)
	case v.snapshot.State == domain.ViewError:
		v.statusbar.SetState(status.StateError)
	case v.snapshot.State == domain.ViewResult:
		v.statusbar.SetState(status.StateResult)
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

// View renders the analysis view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, v.renderSidebar(), "  ", v.renderMain())
	return lipgloss.JoinVertical(lipgloss.Left, v.renderHeader(), body, "", v.statusbar.View())
}

func (v *View) renderHeader() string {
	title := v.styles.Title.Render("Persona Dossier")
	subtitle := v.styles.Label.Render("Advanced Investigative Intelligence")

	model := v.model
	if model == "" {
		model = domain.DefaultModel
	}
	online := v.styles.Success.Render("● System Online") + "  " +
		v.styles.Muted.Render(model+"  "+v.now().Format("Jan 2, 2006"))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, online, "")
}

func (v *View) renderSidebar() string {
	sections := []string{v.input.View(), v.renderButton()}

	if v.snapshot.ErrorMessage != "" {
		sections = append(sections, v.styles.ErrorPanel.Width(v.sidebarWidth()-2).Render(v.snapshot.ErrorMessage))
	}

	sections = append(sections, "", v.history.View())
	return lipgloss.NewStyle().Width(v.sidebarWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (v *View) renderButton() string {
	switch {
	case v.snapshot.State == domain.ViewAnalyzing:
		return v.styles.ButtonDisabled.Render(v.spinner.View() + " Analyzing Data...")
	case v.snapshot.CanSubmit:
		return v.styles.Button.Render("Generate Dossier (ctrl+s)")
	default:
		return v.styles.ButtonDisabled.Render("Generate Dossier")
	}
}

func (v *View) renderMain() string {
	switch {
	case v.snapshot.State == domain.ViewAnalyzing:
		return v.styles.Placeholder.Width(v.mainWidth()).Render(
			v.spinner.View() + " " + v.styles.Title.Render("Scanning Global Databases") + "\n" +
				v.styles.Label.Render("Aggregating sources"),
		)
	case v.snapshot.Result != nil:
		return v.report.View()
	default:
		return v.styles.Placeholder.Width(v.mainWidth()).Render(v.styles.Label.Render("Awaiting Input"))
	}
}

func (v *View) sidebarWidth() int {
	w := v.width / 3
	if w < sidebarMinWidth {
		w = sidebarMinWidth
	}
	return w
}

func (v *View) mainWidth() int {
	w := v.width - v.sidebarWidth() - 2
	if w < 20 {
		w = 20
	}
	return w
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	bodyHeight := height - headerHeight - footerHeight
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	v.input.SetDimensions(v.sidebarWidth(), 6)
	v.history.SetDimensions(v.sidebarWidth(), bodyHeight-12)
	v.report.SetDimensions(v.mainWidth(), bodyHeight)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput replaces the input text.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
	if v.session != nil {
		v.session.SetInput(text)
	}
	v.sync()
}

// Snapshot returns the session state last rendered.
func (v *View) Snapshot() domain.SessionSnapshot {
	return v.snapshot
}

// HistoryFocused returns whether the history list has focus.
func (v *View) HistoryFocused() bool {
	return v.focusHistory
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}
