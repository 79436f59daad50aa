package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates the submitted text is blank after trimming.
	// Drivers prevent this at the input surface; the session rejects it defensively.
	ErrEmptyInput = errors.New("input is empty")

	// ErrAnalysisInProgress indicates an analysis is already in flight.
	// Only one analysis may be outstanding at a time.
	ErrAnalysisInProgress = errors.New("analysis in progress")

	// ErrConfiguration indicates a required setting or credential is missing.
	// Raised at analysis time, before any network call is attempted.
	ErrConfiguration = errors.New("configuration error")

	// ErrProvider indicates the external model call failed.
	// Concrete failures are reported as *ProviderError, which matches this sentinel.
	ErrProvider = errors.New("provider error")
)

// GenericProviderMessage is shown when the provider fails without a usable message.
const GenericProviderMessage = "An unexpected error occurred during analysis."

// ProviderError reports a failed round trip to the external model.
type ProviderError struct {
	// Code is the provider's status code, zero when the failure was not a service fault.
	Code int

	// Message is the provider's own description of the failure, if any.
	Message string

	// Err is the underlying error.
	Err error
}

// NewProviderError wraps err, keeping its text as the provider message.
func NewProviderError(err error) *ProviderError {
	pe := &ProviderError{Err: err}
	if err != nil {
		pe.Message = err.Error()
	}
	return pe
}

// Error returns the provider message verbatim, or a generic description.
func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericProviderMessage
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrProvider.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// ConfigurationError reports a required setting that is absent.
type ConfigurationError struct {
	// Setting names what is missing, e.g. an environment variable.
	Setting string
}

// Error returns "<setting> is not set".
func (e *ConfigurationError) Error() string {
	return e.Setting + " is not set"
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
