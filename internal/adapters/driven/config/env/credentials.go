// Package env reads the provider credential from the process environment.
package env

import (
	"os"
	"strings"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driven"
)

// Ensure CredentialProvider implements the interface.
var _ driven.CredentialProvider = (*CredentialProvider)(nil)

// CredentialProvider reads the API key from an environment variable on every call.
type CredentialProvider struct {
	varName func() string
	lookup  func(string) (string, bool)
}

// NewCredentialProvider reads the variable named by varName at call time,
// so a configuration change is honoured by the next analysis.
// A nil varName reads GEMINI_API_KEY.
func NewCredentialProvider(varName func() string) *CredentialProvider {
	if varName == nil {
		varName = func() string { return domain.DefaultAPIKeyEnv }
	}
	return &CredentialProvider{
		varName: varName,
		lookup:  os.LookupEnv,
	}
}

// APIKey returns the trimmed variable value, or "" when unset or blank.
func (p *CredentialProvider) APIKey() string {
	val, ok := p.lookup(p.Name())
	if !ok {
		return ""
	}
	return strings.TrimSpace(val)
}

// Name returns the environment variable name.
func (p *CredentialProvider) Name() string {
	if name := p.varName(); name != "" {
		return name
	}
	return domain.DefaultAPIKeyEnv
}
