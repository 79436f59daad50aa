package driving

import (
	"context"

	"github.com/angelbloop/dossier/internal/core/domain"
)

// AnalysisService turns free text about a person into a dossier.
type AnalysisService interface {
	// Analyze performs one grounded model call and returns the normalised result.
	// Errors match domain.ErrConfiguration when the credential is missing and
	// domain.ErrProvider when the call fails.
	Analyze(ctx context.Context, input string) (*domain.DossierResult, error)
}
