package domain

import (
	"net/url"
)

// defaultSourceTitle is displayed for citations the model returned without a title.
const defaultSourceTitle = "Source Link"

// Source is one web page the model used as grounding evidence.
// URI is the identity key; a result never holds two sources with the same URI.
type Source struct {
	// URI is the address of the cited page.
	URI string `json:"uri"`

	// Title is the page title reported by the provider.
	Title string `json:"title"`
}

// DisplayTitle returns the title, or a placeholder when the provider sent none.
func (s Source) DisplayTitle() string {
	if s.Title == "" {
		return defaultSourceTitle
	}
	return s.Title
}

// Host returns the hostname of the URI, or the raw URI when it cannot be parsed.
func (s Source) Host() string {
	u, err := url.Parse(s.URI)
	if err != nil || u.Hostname() == "" {
		return s.URI
	}
	return u.Hostname()
}
