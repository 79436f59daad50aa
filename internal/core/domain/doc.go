// Package domain defines the core business entities for Dossier.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AnalysisRequest: Free text about a person, submitted for analysis
//   - Source: A web citation the model used as grounding evidence
//   - DossierResult: The normalised narrative plus de-duplicated sources
//   - HistoryEntry / History: Bounded, newest-first record of past results
//   - ViewState: The single active presentation state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
