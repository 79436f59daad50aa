package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dossier")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".dossier"), dir)
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("provider.model", "gemini-2.5-pro"))
	require.NoError(t, store.Set("ui.word_wrap", 100))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[provider]")
	assert.Contains(t, content, "model = ")
	assert.Contains(t, content, "gemini-2.5-pro")
	assert.Contains(t, content, "[ui]")
	assert.Contains(t, content, "word_wrap = 100")
}

func TestConfigStore_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("provider.model", "gemini-2.5-pro"))
	require.NoError(t, store.Set("provider.api_key_env", "DOSSIER_KEY"))
	require.NoError(t, store.Set("web.allowed_origins", []string{"https://a.example", "https://b.example"}))
	require.NoError(t, store.Set("ui.word_wrap", 120))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", reopened.GetString("provider.model"))
	assert.Equal(t, "DOSSIER_KEY", reopened.GetString("provider.api_key_env"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, reopened.GetStringSlice("web.allowed_origins"))
	assert.Equal(t, 120, reopened.GetInt("ui.word_wrap"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[provider]
model = "gemini-2.0-flash"

[web]
addr = "127.0.0.1:9999"
allowed_origins = ["http://localhost:5173"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", store.GetString("provider.model"))
	assert.Equal(t, "127.0.0.1:9999", store.GetString("web.addr"))
	assert.Equal(t, []string{"http://localhost:5173"}, store.GetStringSlice("web.allowed_origins"))
}

func TestConfigStore_TypedGettersRejectWrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("b", true))

	assert.Equal(t, 0, store.GetInt("s"))
	assert.False(t, store.GetBool("s"))
	assert.Equal(t, "", store.GetString("b"))
	assert.True(t, store.GetBool("b"))
	assert.Nil(t, store.GetStringSlice("s"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is [not toml"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Watch_ReloadsOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("provider.model", "before"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() { changes.Add(1) })
	}()

	// Keep rewriting until the watcher has been installed and sees an event.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(store.Path(), []byte("[provider]\nmodel = \"after\"\n"), 0600)
		return changes.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, "after", store.GetString("provider.model"))

	cancel()
	assert.NoError(t, <-done)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"provider": map[string]any{"model": "m", "api_key_env": "K"},
		"top":      1,
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, map[string]any{
		"provider.model":       "m",
		"provider.api_key_env": "K",
		"top":                  1,
	}, flat)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"provider.model": "m",
		"web.addr":       ":8080",
		"ui":             "scalar",
		"ui.word_wrap":   80,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{"model": "m"}, nested["provider"])
	assert.Equal(t, map[string]any{"addr": ":8080"}, nested["web"])
	assert.Equal(t, "scalar", nested["ui"])
	assert.Equal(t, 80, nested["ui.word_wrap"], "colliding keys stay flat")
	assert.Equal(t, flat, flattenMap(map[string]any{
		"provider":     nested["provider"],
		"web":          nested["web"],
		"ui":           nested["ui"],
		"ui.word_wrap": nested["ui.word_wrap"],
	}, ""))
}
