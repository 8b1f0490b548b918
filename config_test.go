package doclink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "doclink.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
project:
  name: QuantLib
  author: Acme
  version: "1.2"
  release: "1.2.3"
repository:
  org: acme
  repo: quantlib
  package: quantlib
external:
  golang.org/x/sync: https://pkg.go.dev/golang.org/x/sync
exclude:
  - "gen/*"
hook: scripts/links.risor
`)

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "QuantLib", cfg.Project.Name)
	assert.Equal(t, "1.2.3", cfg.Project.Release)
	assert.Equal(t, "acme", cfg.Repository.Org)
	assert.Equal(t, []string{"gen/*"}, cfg.Exclude)
	assert.Equal(t, "scripts/links.risor", cfg.Hook)
	assert.Len(t, cfg.External, 1)
}

func TestLoadConfig_UnknownKeyRejected(t *testing.T) {
	p := writeConfig(t, `
repository:
  org: acme
  repo: quantlib
  package: quantlib
defalt_branch: main
`)

	_, err := LoadConfig(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defalt_branch")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing org",
			cfg:     Config{Repository: RepositoryConfig{Repo: "quantlib", Package: "quantlib"}},
			wantErr: "repository.org",
		},
		{
			name:    "missing repo",
			cfg:     Config{Repository: RepositoryConfig{Org: "acme", Package: "quantlib"}},
			wantErr: "repository.repo",
		},
		{
			name:    "missing package",
			cfg:     Config{Repository: RepositoryConfig{Org: "acme", Repo: "quantlib"}},
			wantErr: "repository.package",
		},
		{
			name: "complete",
			cfg:  Config{Repository: RepositoryConfig{Org: "acme", Repo: "quantlib", Package: "quantlib"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExternalURL(t *testing.T) {
	cfg := &Config{External: map[string]string{
		"golang.org/x":      "https://docs.example.com/x",
		"golang.org/x/sync": "https://docs.example.com/sync/",
	}}

	// Longest prefix wins; a trailing slash on the base is normalized.
	assert.Equal(t,
		"https://docs.example.com/sync/golang.org/x/sync/errgroup",
		cfg.ExternalURL("golang.org/x/sync/errgroup"))
	assert.Equal(t,
		"https://docs.example.com/x/golang.org/x/mod",
		cfg.ExternalURL("golang.org/x/mod"))
	assert.Equal(t,
		"https://docs.example.com/sync/golang.org/x/sync",
		cfg.ExternalURL("golang.org/x/sync"))

	// Prefix matching is segment-aware, not substring-based.
	assert.Empty(t, cfg.ExternalURL("golang.org/xtra"))
	assert.Empty(t, cfg.ExternalURL("example.com/other"))
}
