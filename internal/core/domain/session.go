package domain

// SessionSnapshot is an immutable copy of session state for rendering.
type SessionSnapshot struct {
	// State is the active view state.
	State ViewState `json:"state"`

	// Input is the current contents of the input surface.
	Input string `json:"input"`

	// CanSubmit reports whether the submit action is enabled.
	CanSubmit bool `json:"can_submit"`

	// Result is the displayed dossier, if any. It survives a later failure
	// so a selected history entry can still be shown.
	Result *DossierResult `json:"result,omitempty"`

	// ErrorMessage is the last failure, empty after a new submission starts.
	ErrorMessage string `json:"error,omitempty"`

	// History holds past results, newest first.
	History []HistoryEntry `json:"history"`
}
