package domain

// ViewState is the single active presentation state of a session.
type ViewState int

const (
	// ViewIdle means nothing has been submitted yet.
	ViewIdle ViewState = iota
	// ViewAnalyzing means a request is in flight.
	ViewAnalyzing
	// ViewResult means the last request succeeded or a history entry is displayed.
	ViewResult
	// ViewError means the last request failed.
	ViewError
)

// String returns the string representation of the view state.
func (v ViewState) String() string {
	switch v {
	case ViewIdle:
		return "idle"
	case ViewAnalyzing:
		return "analyzing"
	case ViewResult:
		return "result"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so states serialise by name.
func (v ViewState) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
