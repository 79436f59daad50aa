package driven

import "context"

// ResearchModel is a hosted generative model that can ground its answer in live web search.
// Implementations translate ResearchRequest into a provider call and report the provider's
// reply in the loosely-typed ResearchResponse shape; normalisation happens in core.
//
// Implementations may include:
//   - Gemini (Google Search grounding)
type ResearchModel interface {
	// Research performs exactly one request/response round trip.
	// It must not retry.
	Research(ctx context.Context, req ResearchRequest) (*ResearchResponse, error)

	// Close releases resources.
	Close() error
}

// ResearchModelFactory binds a model client to a credential.
// The factory is called per analysis so the credential is read at call time.
type ResearchModelFactory interface {
	// NewResearchModel creates a client for apiKey. It must not perform network I/O.
	NewResearchModel(ctx context.Context, apiKey string) (ResearchModel, error)
}

// ResearchRequest carries everything sent to the provider for one analysis.
type ResearchRequest struct {
	// Model is the provider model identifier.
	Model string

	// SystemInstruction steers the model for the whole exchange.
	SystemInstruction string

	// Prompt is the user turn.
	Prompt string

	// EnableSearch permits the model to issue live web queries.
	EnableSearch bool

	// SafetySettings configures content filtering per harm category.
	SafetySettings []SafetySetting
}

// HarmCategory identifies a class of content the provider may filter.
type HarmCategory string

// Harm categories understood by providers.
const (
	HarmCategoryHarassment       HarmCategory = "harassment"
	HarmCategoryHateSpeech       HarmCategory = "hate_speech"
	HarmCategorySexuallyExplicit HarmCategory = "sexually_explicit"
	HarmCategoryDangerousContent HarmCategory = "dangerous_content"
	HarmCategoryCivicIntegrity   HarmCategory = "civic_integrity"
)

// AllHarmCategories returns every category a safety policy must cover.
func AllHarmCategories() []HarmCategory {
	return []HarmCategory{
		HarmCategoryHarassment,
		HarmCategoryHateSpeech,
		HarmCategorySexuallyExplicit,
		HarmCategoryDangerousContent,
		HarmCategoryCivicIntegrity,
	}
}

// BlockThreshold is the filtering level for a harm category.
type BlockThreshold string

// BlockNone disables filtering; it is the most permissive level.
const BlockNone BlockThreshold = "block_none"

// SafetySetting pairs a category with its filtering level.
type SafetySetting struct {
	Category  HarmCategory
	Threshold BlockThreshold
}

// PermissiveSafetySettings sets every harm category to BlockNone.
// Investigative output is otherwise truncated silently by the provider.
func PermissiveSafetySettings() []SafetySetting {
	categories := AllHarmCategories()
	settings := make([]SafetySetting, len(categories))
	for i, c := range categories {
		settings[i] = SafetySetting{Category: c, Threshold: BlockNone}
	}
	return settings
}

// ResearchResponse is the provider's reply, kept close to the wire shape.
// Any field may be empty; core validates and normalises it.
type ResearchResponse struct {
	// Text is the narrative answer. Empty when the provider produced none.
	Text string

	// Citations are the grounding entries in provider order.
	Citations []Citation

	// SearchQueries are the web queries the model issued, if reported.
	SearchQueries []string
}

// Citation is one grounding entry. Exactly one reference kind is normally set.
type Citation struct {
	// Web is set for web-page grounding.
	Web *WebReference

	// Other names a non-web grounding kind (e.g. "retrieved_context") when Web is nil.
	Other string
}

// WebReference identifies a cited web page.
type WebReference struct {
	URI   string
	Title string
}
