package domain

import (
	"strings"
	"time"
)

// History bounds and labelling.
const (
	// HistoryCapacity is the maximum number of retained entries.
	HistoryCapacity = 10

	// UnnamedAnalysisLabel labels entries whose first input line is blank.
	UnnamedAnalysisLabel = "Unnamed Analysis"

	// TimestampLayout formats the entry time for display.
	TimestampLayout = "3:04:05 PM"

	historyLabelLength = 30
)

// HistoryEntry records one successful analysis for later re-display.
type HistoryEntry struct {
	// ID uniquely identifies the entry within a session.
	ID string `json:"id"`

	// Label is derived from the first line of the input.
	Label string `json:"label"`

	// Timestamp is the local time of completion, formatted for display.
	Timestamp string `json:"timestamp"`

	// CreatedAt is when the entry was recorded.
	CreatedAt time.Time `json:"created_at"`

	// Result is the retained dossier, shared with whoever displays it.
	Result *DossierResult `json:"result"`
}

// NewHistoryEntry builds an entry for a completed analysis of input.
func NewHistoryEntry(id, input string, at time.Time, result *DossierResult) HistoryEntry {
	return HistoryEntry{
		ID:        id,
		Label:     HistoryLabel(input),
		Timestamp: at.Format(TimestampLayout),
		CreatedAt: at,
		Result:    result,
	}
}

// HistoryLabel returns the first line of input cut to 30 characters,
// or UnnamedAnalysisLabel when that line is blank. The line is kept as
// typed apart from a CRLF terminator.
func HistoryLabel(input string) string {
	first, _, _ := strings.Cut(input, "\n")
	first = strings.TrimSuffix(first, "\r")
	if IsBlank(first) {
		return UnnamedAnalysisLabel
	}
	runes := []rune(first)
	if len(runes) > historyLabelLength {
		runes = runes[:historyLabelLength]
	}
	return string(runes)
}

// History is a bounded newest-first list of entries.
// Insertion always happens at the front; the oldest entry is evicted on overflow.
// History is not safe for concurrent use; the owning session serialises access.
type History struct {
	entries  []HistoryEntry
	capacity int
}

// NewHistory creates an empty history holding at most capacity entries.
// A non-positive capacity falls back to HistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{
		entries:  make([]HistoryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Push inserts e at the front, evicting the oldest entry if the list is full.
func (h *History) Push(e HistoryEntry) {
	h.entries = append([]HistoryEntry{e}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int {
	return h.capacity
}

// At returns the entry at index i, newest first.
func (h *History) At(i int) (HistoryEntry, bool) {
	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, false
	}
	return h.entries[i], true
}

// Find returns the entry with the given ID.
func (h *History) Find(id string) (HistoryEntry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return HistoryEntry{}, false
}
