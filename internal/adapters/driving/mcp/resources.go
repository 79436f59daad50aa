package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/angelbloop/dossier/internal/core/domain"
)

const uriScheme = "dossier://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent analyses in this session, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{entryId}",
		Name:        "history-entry",
		Description: "Markdown dossier of one history entry",
		MIMEType:    "text/markdown",
	}, s.handleEntryResource)
}

type entryInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Timestamp   string `json:"timestamp"`
	SourceCount int    `json:"source_count"`
}

// handleHistoryResource lists the history without the dossier bodies.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	history := s.ports.Session.Snapshot().History

	infos := make([]entryInfo, len(history))
	for i, e := range history {
		infos[i] = entryInfo{
			ID:        e.ID,
			Label:     e.Label,
			Timestamp: e.Timestamp,
		}
		if e.Result != nil {
			infos[i].SourceCount = len(e.Result.Sources)
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEntryResource returns one entry as Markdown with its sources appended.
// Reading does not change what the session displays.
func (s *Server) handleEntryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractEntryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var entry *domain.HistoryEntry
	for _, e := range s.ports.Session.Snapshot().History {
		if e.ID == id {
			entry = &e
			break
		}
	}
	if entry == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     renderEntry(entry),
		}},
	}, nil
}

func renderEntry(e *domain.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n", e.Label, e.Timestamp)
	if e.Result == nil {
		b.WriteString(domain.NoAnalysisText)
		return b.String()
	}
	b.WriteString(e.Result.Text)
	if e.Result.HasSources() {
		b.WriteString("\n\n## Verified Sources\n\n")
		for i, src := range e.Result.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s) (%s)\n", i+1, src.DisplayTitle(), src.URI, src.Host())
		}
	}
	return b.String()
}

// extractEntryID extracts the entry ID from a URI like dossier://history/{entryId}.
func extractEntryID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
