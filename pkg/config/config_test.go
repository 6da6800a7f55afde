package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "content", cfg.Root)
	assert.Equal(t, "manifest.json", cfg.Output)
	assert.True(t, cfg.VCS.Enabled)
	assert.Contains(t, cfg.Extensions, ".md")
	assert.Contains(t, cfg.Extensions, ".enc")
	assert.Contains(t, cfg.Extensions, ".link")
}

func TestLoadWithoutFile(t *testing.T) {
	// No config file anywhere near a temp working directory: defaults win.
	wd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(wd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Root, cfg.Root)
	assert.Equal(t, Default().Output, cfg.Output)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifestgen.yaml")
	content := `root: /srv/content
output: /srv/out/manifest.json
extensions:
  - MD
  - pdf
exclude:
  - "drafts/**"
vcs:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/content", cfg.Root)
	assert.Equal(t, "/srv/out/manifest.json", cfg.Output)
	assert.False(t, cfg.VCS.Enabled)
	assert.Equal(t, []string{"drafts/**"}, cfg.Exclude)
	// Extensions are normalized to lowercase with a leading dot
	assert.Equal(t, []string{".md", ".pdf"}, cfg.Extensions)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExtensionSet(t *testing.T) {
	cfg := &Config{Extensions: []string{".md", ".pdf", ""}}
	set := cfg.ExtensionSet()

	assert.Len(t, set, 2)
	_, ok := set[".md"]
	assert.True(t, ok)
	_, ok = set[".txt"]
	assert.False(t, ok)
}
