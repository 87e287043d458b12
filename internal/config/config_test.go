package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulateRepositoryDefaultKeepsExplicitValue(t *testing.T) {
	cfg := Config{Repository: "acme/widgets"}
	populateRepositoryDefault(&cfg)
	require.Equal(t, "acme/widgets", cfg.Repository)
}

func TestPopulateRepositoryDefaultFallsBackToGitRemote(t *testing.T) {
	tmp := t.TempDir()
	repo, err := git.PlainInit(tmp, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(
		&gitconfig.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:octo/widget.git"}},
	)
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
	cfg := Config{}
	populateRepositoryDefault(&cfg)
	require.Equal(t, "octo/widget", cfg.Repository)
}

func TestPopulateRepositoryDefaultUsesFixedFallback(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
	cfg := Config{}
	populateRepositoryDefault(&cfg)
	require.Equal(t, DefaultRepository, cfg.Repository)
}

func TestParseGitRemoteURL(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
	}{
		{name: "https clone", url: "https://github.com/org/project.git", wantOwner: "org", wantRepo: "project"},
		{name: "ssh", url: "git@github.com:org/project.git", wantOwner: "org", wantRepo: "project"},
		{name: "ssh without suffix", url: "git@github.com:org/project", wantOwner: "org", wantRepo: "project"},
		{name: "file path", url: filepath.Join("tmp", "org", "project"), wantOwner: "org", wantRepo: "project"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := parseGitRemoteURL(tc.url)
			require.NoError(t, err)
			require.Equal(t, tc.wantOwner, owner)
			require.Equal(t, tc.wantRepo, repo)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Should accept a complete configuration", func(t *testing.T) {
		cfg := Config{Repository: "terrazul-ai/terrazul", Workflow: "release.yml", GhPath: "gh"}
		assert.NoError(t, cfg.Validate())
	})
	t.Run("Should reject a slug without a slash", func(t *testing.T) {
		cfg := Config{Repository: "terrazul", Workflow: "release.yml", GhPath: "gh"}
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject a workflow path", func(t *testing.T) {
		cfg := Config{Repository: "terrazul-ai/terrazul", Workflow: ".github/workflows/release.yml", GhPath: "gh"}
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject an empty gh path", func(t *testing.T) {
		cfg := Config{Repository: "terrazul-ai/terrazul", Workflow: "release.yml"}
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should tolerate a malformed token", func(t *testing.T) {
		// The token is only validated by the API-backed lister; a stray
		// GITHUB_TOKEN must not fail paths that never consult it.
		cfg := Config{
			Repository:  "terrazul-ai/terrazul",
			Workflow:    "release.yml",
			GhPath:      "gh",
			GithubToken: "short",
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadConfigToleratesAmbientToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_"+strings.Repeat("a", 36))
	t.Setenv("GITHUB_REPOSITORY", "terrazul-ai/terrazul")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ghp_"+strings.Repeat("a", 36), cfg.GithubToken)
	assert.Equal(t, "terrazul-ai/terrazul", cfg.Repository)
}

func TestValidateGitHubToken(t *testing.T) {
	t.Run("Should accept current token formats", func(t *testing.T) {
		tokens := []string{
			strings.Repeat("a1", 20),
			"ghp_" + strings.Repeat("a", 36),
			"ghs_" + strings.Repeat("b", 36),
			"gho_" + strings.Repeat("c", 36),
			"github_pat_" + strings.Repeat("d", 82),
		}
		for _, token := range tokens {
			assert.NoError(t, ValidateGitHubToken(token), "token %q", token)
		}
	})
	t.Run("Should reject malformed tokens", func(t *testing.T) {
		tokens := []string{"", "short", "ghp_tooshort", strings.Repeat("z", 40)}
		for _, token := range tokens {
			assert.Error(t, ValidateGitHubToken(token), "token %q", token)
		}
	})
}

func TestSplitRepository(t *testing.T) {
	t.Run("Should split owner and name", func(t *testing.T) {
		owner, name, err := SplitRepository("terrazul-ai/terrazul")
		require.NoError(t, err)
		assert.Equal(t, "terrazul-ai", owner)
		assert.Equal(t, "terrazul", name)
	})
	t.Run("Should reject missing parts", func(t *testing.T) {
		for _, slug := range []string{"", "owner/", "/name", "owner"} {
			_, _, err := SplitRepository(slug)
			assert.Error(t, err, "slug %q", slug)
		}
	})
}
