package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/angelbloop/dossier/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

const promptExt = ".txt"

// PromptStore serves dossier prompts from editable files, one per prompt,
// falling back to the built-in text when a file is missing or unreadable.
//
// Nothing touches the disk until the first Load; that call creates the
// directory, writes any missing default files and a README.
type PromptStore struct {
	dir      string
	defaults map[string]string

	mu    sync.RWMutex
	cache map[string]string

	setup    sync.Once
	setupErr error
}

// NewPromptStore creates a file-based prompt store rooted at dir.
// If dir is empty, defaults to ~/.dossier/prompts/.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "prompts")
	}

	return &PromptStore{
		dir:      dir,
		defaults: driven.DefaultPrompts(),
		cache:    make(map[string]string),
	}, nil
}

// Load returns the prompt called name.
func (s *PromptStore) Load(name string) (string, error) {
	s.setup.Do(s.initialise)

	fallback, known := s.defaults[name]
	if s.setupErr != nil {
		if known {
			return fallback, nil
		}
		return "", fmt.Errorf("prompt store unavailable: %w", s.setupErr)
	}

	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	prompt, err := s.read(name)
	switch {
	case err == nil:
	case known:
		return fallback, nil
	default:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Keep whichever value landed first.
	if existing, ok := s.cache[name]; ok {
		return existing, nil
	}
	s.cache[name] = prompt
	return prompt, nil
}

// Reload drops cached prompts so the next Load reads the files again.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Names returns the built-in prompt names in sorted order.
func (s *PromptStore) Names() []string {
	names := make([]string, 0, len(s.defaults))
	for name := range s.defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.setupErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for _, name := range s.Names() {
		if err := writeIfMissing(s.path(name), s.defaults[name]); err != nil {
			s.setupErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}

	if err := writeIfMissing(filepath.Join(s.dir, "README.md"), s.readme()); err != nil {
		s.setupErr = fmt.Errorf("create prompt readme: %w", err)
	}
}

func (s *PromptStore) read(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("prompt file is empty")
	}
	return prompt, nil
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+promptExt)
}

func (s *PromptStore) readme() string {
	var b strings.Builder
	b.WriteString("# Dossier Prompts\n\n")
	b.WriteString("These files steer the model used by `dossier analyze`, the TUI and the web client.\n\n")
	b.WriteString("## Files\n\n")
	b.WriteString("- `" + driven.PromptDossierSystem + promptExt + "` - system instruction listing the dossier sections\n")
	b.WriteString("- `" + driven.PromptDossierRequest + promptExt + "` - wraps the text you submit\n\n")
	b.WriteString("## Placeholders\n\n")
	b.WriteString("`" + driven.PromptDossierRequest + promptExt + "` must contain exactly one `%s`, replaced by your input.\n")
	b.WriteString("If it does not, the built-in template is used instead.\n\n")
	b.WriteString("Delete a file to restore its default on the next run.\n")
	return b.String()
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}
