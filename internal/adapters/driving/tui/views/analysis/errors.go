package analysis

import "errors"

// Error definitions for the analysis view.
var (
	// ErrNoAnalysisService indicates that no analysis service was provided.
	ErrNoAnalysisService = errors.New("analysis service is required")

	// ErrNoSession indicates that no session controller was provided.
	ErrNoSession = errors.New("session controller is required")
)
