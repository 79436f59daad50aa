// Package gemini provides a grounded research adapter using the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driven"
)

// Ensure the adapter implements the interfaces.
var (
	_ driven.ResearchModel        = (*ResearchModel)(nil)
	_ driven.ResearchModelFactory = (*Factory)(nil)
)

// Config holds client options shared by every model a Factory creates.
type Config struct {
	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string

	// HTTPClient overrides the transport. Nil uses the SDK default.
	HTTPClient *http.Client
}

// Factory creates Gemini clients bound to a credential.
type Factory struct {
	cfg Config
}

// NewFactory creates a factory for Gemini research models.
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// NewResearchModel creates a client for apiKey. No request is sent.
func (f *Factory) NewResearchModel(ctx context.Context, apiKey string) (driven.ResearchModel, error) {
	if apiKey == "" {
		return nil, &domain.ConfigurationError{Setting: domain.DefaultAPIKeyEnv}
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: f.cfg.HTTPClient,
	}
	if f.cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = f.cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &ResearchModel{client: client}, nil
}

// ResearchModel performs grounded generation against one Gemini client.
type ResearchModel struct {
	client *genai.Client
}

// Research sends a single generateContent call. It never retries.
func (m *ResearchModel) Research(ctx context.Context, req driven.ResearchRequest) (*driven.ResearchResponse, error) {
	if req.Model == "" {
		req.Model = domain.DefaultModel
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := m.client.Models.GenerateContent(ctx, req.Model, contents, buildConfig(req))
	if err != nil {
		return nil, translateError(err)
	}

	return convertResponse(resp), nil
}

// Close releases resources. The SDK client holds none that need closing.
func (m *ResearchModel) Close() error {
	return nil
}

// buildConfig maps a research request onto the SDK's generation config.
func buildConfig(req driven.ResearchRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)},
		}
	}

	if req.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	for _, s := range req.SafetySettings {
		category, ok := harmCategories[s.Category]
		if !ok {
			continue
		}
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  category,
			Threshold: blockThreshold(s.Threshold),
		})
	}

	return cfg
}

var harmCategories = map[driven.HarmCategory]genai.HarmCategory{
	driven.HarmCategoryHarassment:       genai.HarmCategoryHarassment,
	driven.HarmCategoryHateSpeech:       genai.HarmCategoryHateSpeech,
	driven.HarmCategorySexuallyExplicit: genai.HarmCategorySexuallyExplicit,
	driven.HarmCategoryDangerousContent: genai.HarmCategoryDangerousContent,
	driven.HarmCategoryCivicIntegrity:   genai.HarmCategoryCivicIntegrity,
}

func blockThreshold(t driven.BlockThreshold) genai.HarmBlockThreshold {
	if t == driven.BlockNone {
		return genai.HarmBlockThresholdBlockNone
	}
	return genai.HarmBlockThresholdUnspecified
}

// convertResponse reads the first candidate's text and grounding chunks.
// Thought parts are skipped.
func convertResponse(resp *genai.GenerateContentResponse) *driven.ResearchResponse {
	out := &driven.ResearchResponse{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return out
	}
	cand := resp.Candidates[0]

	if cand.Content != nil {
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
		out.Text = b.String()
	}

	if gm := cand.GroundingMetadata; gm != nil {
		out.SearchQueries = append(out.SearchQueries, gm.WebSearchQueries...)
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil {
				continue
			}
			switch {
			case chunk.Web != nil:
				out.Citations = append(out.Citations, driven.Citation{
					Web: &driven.WebReference{URI: chunk.Web.URI, Title: chunk.Web.Title},
				})
			case chunk.RetrievedContext != nil:
				out.Citations = append(out.Citations, driven.Citation{Other: "retrieved_context"})
			}
		}
	}

	return out
}

// translateError turns SDK failures into provider errors carrying the
// service's own message when one was returned.
func translateError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ProviderError{Code: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &domain.ProviderError{Code: apiErrPtr.Code, Message: apiErrPtr.Message, Err: err}
	}
	return domain.NewProviderError(err)
}
