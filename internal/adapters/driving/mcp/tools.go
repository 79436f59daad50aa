package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/angelbloop/dossier/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_person tool.
type AnalyzeInput struct {
	Text string `json:"text" jsonschema:"free text about the person: name, role, links, known facts"`
}

// SelectInput is the input schema for the select_history_entry tool.
type SelectInput struct {
	ID string `json:"id" jsonschema:"identifier of a history entry from dossier://history"`
}

// DossierOutput is the output schema shared by the dossier tools.
type DossierOutput struct {
	Text    string         `json:"text"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput represents a single cited page.
type SourceOutput struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
	Host  string `json:"host"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_person",
		Description: "Build a web-grounded dossier on a person from free text",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_history_entry",
		Description: "Return a dossier from this session's history without a new analysis",
	}, s.handleSelect)
}

// handleAnalyze runs one analysis through the session so it lands in history.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, DossierOutput, error) {
	if domain.IsBlank(input.Text) {
		return nil, DossierOutput{}, fmt.Errorf("analyze_person: %w", domain.ErrEmptyInput)
	}

	result, err := s.ports.Session.SubmitText(ctx, input.Text)
	if err != nil {
		return nil, DossierOutput{}, err
	}

	return nil, toOutput(result), nil
}

// handleSelect re-displays a retained result.
func (s *Server) handleSelect(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SelectInput,
) (*mcp.CallToolResult, DossierOutput, error) {
	result, err := s.ports.Session.SelectHistoryEntry(input.ID)
	if err != nil {
		return nil, DossierOutput{}, err
	}
	return nil, toOutput(result), nil
}

func toOutput(r *domain.DossierResult) DossierOutput {
	if r == nil {
		return DossierOutput{Text: domain.NoAnalysisText, Sources: []SourceOutput{}}
	}
	out := DossierOutput{
		Text:    r.Text,
		Sources: make([]SourceOutput, len(r.Sources)),
	}
	for i, src := range r.Sources {
		out.Sources[i] = SourceOutput{
			URI:   src.URI,
			Title: src.DisplayTitle(),
			Host:  src.Host(),
		}
	}
	return out
}
