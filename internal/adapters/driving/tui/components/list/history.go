// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/styles"
	"github.com/angelbloop/dossier/internal/core/domain"
)

// HistoryList displays past analyses in a navigable list, newest first.
type HistoryList struct {
	entries  []domain.HistoryEntry
	selected int
	focused  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewHistoryList creates a new history list component.
func NewHistoryList(s *styles.Styles) *HistoryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HistoryList{
		styles: s,
		width:  30,
		height: 12,
	}
}

// Init initialises the history list.
func (h *HistoryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (h *HistoryList) Update(msg tea.Msg) (*HistoryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			h.MoveUp()
		case "down", "j":
			h.MoveDown()
		}
	}
	return h, nil
}

// View renders the history list.
func (h *HistoryList) View() string {
	header := h.styles.Label.Render("Recent Analyses")
	if len(h.entries) == 0 {
		return header + "\n" + h.styles.Muted.Render("No analyses yet")
	}

	lines := make([]string, 0, len(h.entries)+1)
	lines = append(lines, header)

	// Each entry takes two lines.
	visible := (h.height - 1) / 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if h.selected >= visible {
		start = h.selected - visible + 1
	}
	end := start + visible
	if end > len(h.entries) {
		end = len(h.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, h.renderEntry(i, &h.entries[i]))
	}

	return strings.Join(lines, "\n")
}

func (h *HistoryList) renderEntry(index int, e *domain.HistoryEntry) string {
	indicator := "  "
	if index == h.selected && h.focused {
		indicator = "> "
	}

	maxLabel := h.width - 4
	if maxLabel < 10 {
		maxLabel = 10
	}
	label := e.Label
	if runes := []rune(label); len(runes) > maxLabel {
		label = string(runes[:maxLabel-3]) + "..."
	}

	var labelLine string
	if index == h.selected && h.focused {
		labelLine = h.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, maxLabel, label))
	} else {
		labelLine = h.styles.Normal.Render(indicator + label)
	}

	return labelLine + "\n" + h.styles.Muted.Render("    "+e.Timestamp)
}

// SetEntries replaces the entries and keeps the selection in range.
func (h *HistoryList) SetEntries(entries []domain.HistoryEntry) {
	h.entries = entries
	if h.selected >= len(entries) {
		h.selected = 0
	}
}

// Entries returns the current entries.
func (h *HistoryList) Entries() []domain.HistoryEntry {
	return h.entries
}

// Selected returns the index of the selected entry.
func (h *HistoryList) Selected() int {
	return h.selected
}

// SetSelected sets the selected index.
func (h *HistoryList) SetSelected(index int) {
	if index >= 0 && index < len(h.entries) {
		h.selected = index
	}
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (h *HistoryList) SelectedEntry() *domain.HistoryEntry {
	if len(h.entries) == 0 || h.selected < 0 || h.selected >= len(h.entries) {
		return nil
	}
	return &h.entries[h.selected]
}

// MoveUp moves selection up.
func (h *HistoryList) MoveUp() {
	if h.selected > 0 {
		h.selected--
	}
}

// MoveDown moves selection down.
func (h *HistoryList) MoveDown() {
	if h.selected < len(h.entries)-1 {
		h.selected++
	}
}

// Focus highlights the selected entry.
func (h *HistoryList) Focus() {
	h.focused = true
}

// Blur removes the highlight.
func (h *HistoryList) Blur() {
	h.focused = false
}

// Focused returns whether the list has focus.
func (h *HistoryList) Focused() bool {
	return h.focused
}

// SetDimensions sets the component dimensions.
func (h *HistoryList) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Count returns the number of entries.
func (h *HistoryList) Count() int {
	return len(h.entries)
}

// IsEmpty returns whether the list is empty.
func (h *HistoryList) IsEmpty() bool {
	return len(h.entries) == 0
}
