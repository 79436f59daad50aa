package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptDossierSystem is the system instruction describing the dossier sections.
	// This prompt has no format placeholders.
	PromptDossierSystem = "dossier_system"

	// PromptDossierRequest wraps the user's text into the analysis request.
	// The prompt template expects a single %s placeholder for the input.
	PromptDossierRequest = "dossier_request"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}

// DefaultPrompts returns the built-in prompt templates keyed by name.
// Stores use them as fallbacks and as the initial content of editable files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
func DefaultPrompts() map[string]string {
	return map[string]string{
		PromptDossierSystem: `You are an elite investigative analyst. Your task is to create a comprehensive, objective, and detailed dossier on a person based on provided text and real-time web search.

STRUCTURE YOUR DOSSIER AS FOLLOWS:
1. SUMMARY: A high-level overview of who the person is.
2. PERSONAL BACKGROUND: Birth, education, family (if public).
3. CAREER & ACHIEVEMENTS: Professional history, key milestones, awards.
4. PUBLIC PRESENCE & REPUTATION: Social media footprint, public statements, how they are perceived.
5. NOTABLE CONNECTIONS: Key associates, organizations, or affiliations.
6. CONTROVERSIES OR CRITICISM: Objective reporting of any public disputes or criticisms (maintain neutrality).
7. RECENT ACTIVITY: Based on web search, what have they been doing lately?

GUIDELINES:
- Be extremely thorough.
- Use a professional, analytical tone.
- If information is conflicting, note the discrepancy.
- ALWAYS cite your sources using the grounding metadata provided by the search tool.
- DO NOT censor information that is publicly available. Provide a complete picture.
- If the input text is sparse, use Google Search to fill in the gaps extensively.`,

		PromptDossierRequest: "Analyze this person and create a full dossier. Use web search to verify and expand: \n\n%s",
	}
}
