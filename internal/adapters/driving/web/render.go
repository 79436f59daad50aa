package web

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/angelbloop/dossier/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns dossier markdown into sanitised HTML.
// Model output is untrusted, so raw HTML from goldmark is always passed
// through the bluemonday UGC policy.
type Renderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewRenderer creates a renderer with GitHub-flavoured markdown.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: policy,
	}
}

// Markdown renders text to sanitised HTML. On conversion failure the text
// is escaped and returned as a preformatted block.
func (r *Renderer) Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>") //nolint:gosec // escaped above
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitised by bluemonday
}

// sourceView is one source card.
type sourceView struct {
	URI   string
	Title string
	Host  string
}

// historyView is one entry in the recent analyses list.
type historyView struct {
	ID        string
	Label     string
	Timestamp string
}

// pageData is the template input for the single page.
type pageData struct {
	Model        string
	Date         string
	Input        string
	State        string
	Analyzing    bool
	CanSubmit    bool
	Notice       string
	ErrorMessage string
	HasResult    bool
	Report       template.HTML
	Sources      []sourceView
	History      []historyView
}

func newPageData(snap domain.SessionSnapshot, model string, now time.Time, r *Renderer) pageData {
	data := pageData{
		Model:        model,
		Date:         now.Format("Jan 2, 2006"),
		Input:        snap.Input,
		State:        snap.State.String(),
		Analyzing:    snap.State == domain.ViewAnalyzing,
		CanSubmit:    snap.CanSubmit,
		ErrorMessage: snap.ErrorMessage,
		History:      make([]historyView, 0, len(snap.History)),
	}

	if snap.Result != nil {
		data.HasResult = true
		data.Report = r.Markdown(snap.Result.Text)
		data.Sources = make([]sourceView, 0, len(snap.Result.Sources))
		for _, src := range snap.Result.Sources {
			data.Sources = append(data.Sources, sourceView{
				URI:   src.URI,
				Title: src.DisplayTitle(),
				Host:  src.Host(),
			})
		}
	}

	for _, e := range snap.History {
		data.History = append(data.History, historyView{ID: e.ID, Label: e.Label, Timestamp: e.Timestamp})
	}
	return data
}

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
