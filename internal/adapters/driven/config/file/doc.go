// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.dossier.
//
// Adapters:
//   - ConfigStore: TOML configuration with live reload
//   - PromptStore: user-editable prompt templates
package file
