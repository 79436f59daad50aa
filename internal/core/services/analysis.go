package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driven"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
	"github.com/angelbloop/dossier/internal/logger"
)

// Ensure AnalysisService implements the interfaces.
var (
	_ driving.AnalysisService  = (*AnalysisService)(nil)
	_ driven.PromptStoreAware = (*AnalysisService)(nil)
)

// AnalysisService builds one grounded research request per analysis and
// normalises the reply into a DossierResult.
type AnalysisService struct {
	credentials driven.CredentialProvider
	factory     driven.ResearchModelFactory
	settings    *SettingsService
	promptStore driven.PromptStore
}

// NewAnalysisService creates a new analysis service.
// settings may be nil, in which case the default model is used.
func NewAnalysisService(
	credentials driven.CredentialProvider,
	factory driven.ResearchModelFactory,
	settings *SettingsService,
) *AnalysisService {
	return &AnalysisService{
		credentials: credentials,
		factory:     factory,
		settings:    settings,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AnalysisService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Analyze performs one grounded model call for input.
// The credential is read here, never earlier; when it is missing no model is built.
func (s *AnalysisService) Analyze(ctx context.Context, input string) (*domain.DossierResult, error) {
	req, err := domain.NewAnalysisRequest(input)
	if err != nil {
		return nil, err
	}

	logger.Section("Analysis")

	apiKey := s.credentials.APIKey()
	if apiKey == "" {
		return nil, &domain.ConfigurationError{Setting: s.credentials.Name()}
	}

	researchReq := s.buildRequest(req)
	logger.Debug("model=%s search=%t input_bytes=%d", researchReq.Model, researchReq.EnableSearch, len(req.Input))

	model, err := s.factory.NewResearchModel(ctx, apiKey)
	if err != nil {
		logger.Error("create research model: %v", err)
		return nil, toProviderError(err)
	}
	defer func() {
		if cerr := model.Close(); cerr != nil {
			logger.Warn("close research model: %v", cerr)
		}
	}()

	resp, err := model.Research(ctx, researchReq)
	if err != nil {
		logger.Error("analysis failed: %v", err)
		return nil, toProviderError(err)
	}

	result := NormaliseResponse(resp)
	logger.Debug("text_bytes=%d sources=%d", len(result.Text), len(result.Sources))
	if resp != nil && len(resp.SearchQueries) > 0 {
		logger.Debug("search queries: %s", strings.Join(resp.SearchQueries, " | "))
	}

	return result, nil
}

// buildRequest assembles the provider request for req.
func (s *AnalysisService) buildRequest(req domain.AnalysisRequest) driven.ResearchRequest {
	defaults := driven.DefaultPrompts()

	system := s.loadPrompt(driven.PromptDossierSystem, defaults[driven.PromptDossierSystem])

	template := s.loadPrompt(driven.PromptDossierRequest, defaults[driven.PromptDossierRequest])
	if strings.Count(template, "%s") != 1 || strings.Count(template, "%") != 1 {
		logger.Warn("prompt %q must contain exactly one %%s; using default", driven.PromptDossierRequest)
		template = defaults[driven.PromptDossierRequest]
	}

	model := domain.DefaultModel
	if s.settings != nil {
		model = s.settings.Model()
	}

	return driven.ResearchRequest{
		Model:             model,
		SystemInstruction: system,
		Prompt:            fmt.Sprintf(template, req.Input),
		EnableSearch:      true,
		SafetySettings:    driven.PermissiveSafetySettings(),
	}
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AnalysisService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return fallback
	}
	return prompt
}

// NormaliseResponse converts a provider reply into a DossierResult.
// Empty text becomes the placeholder. Only web citations with a URI are kept,
// de-duplicated by URI with the first occurrence winning.
func NormaliseResponse(resp *driven.ResearchResponse) *domain.DossierResult {
	result := &domain.DossierResult{
		Text:    domain.NoAnalysisText,
		Sources: []domain.Source{},
	}
	if resp == nil {
		return result
	}

	if resp.Text != "" {
		result.Text = resp.Text
	}

	seen := make(map[string]struct{}, len(resp.Citations))
	for _, c := range resp.Citations {
		if c.Web == nil || c.Web.URI == "" {
			continue
		}
		if _, dup := seen[c.Web.URI]; dup {
			continue
		}
		seen[c.Web.URI] = struct{}{}
		result.Sources = append(result.Sources, domain.Source{URI: c.Web.URI, Title: c.Web.Title})
	}

	return result
}

// toProviderError keeps an adapter's typed error or wraps a plain one.
func toProviderError(err error) error {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return domain.NewProviderError(err)
}
