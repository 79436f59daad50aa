package domain

import "strings"

// NoAnalysisText replaces an empty narrative from the provider.
const NoAnalysisText = "No analysis generated."

// AnalysisRequest is the raw text a user submitted about a person.
// It lives only for the duration of one analysis.
type AnalysisRequest struct {
	// Input is the text exactly as entered.
	Input string
}

// NewAnalysisRequest validates input and returns a request.
// Returns ErrEmptyInput if the text is blank after trimming.
func NewAnalysisRequest(input string) (AnalysisRequest, error) {
	if IsBlank(input) {
		return AnalysisRequest{}, ErrEmptyInput
	}
	return AnalysisRequest{Input: input}, nil
}

// IsBlank reports whether s contains no non-whitespace characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DossierResult is the normalised output of one analysis.
// It is immutable once produced; holders share it by pointer.
type DossierResult struct {
	// Text is the narrative dossier in Markdown.
	Text string `json:"text"`

	// Sources are the cited pages, unique by URI, in first-seen order.
	Sources []Source `json:"sources"`
}

// HasSources reports whether the result cites any pages.
func (r *DossierResult) HasSources() bool {
	return r != nil && len(r.Sources) > 0
}
