package tui

import "errors"

// ErrMissingSession is returned when the session controller is not provided.
var ErrMissingSession = errors.New("tui: session controller is required")

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
