package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

const (
	// DefaultWorkflow is the workflow file assumed to have produced the
	// SEA binaries.
	DefaultWorkflow = "release.yml"
	// DefaultRepository is the fallback owner/name slug when neither flag,
	// environment, nor the local git remote supplies one.
	DefaultRepository = "terrazul-ai/terrazul"
	// DefaultGhPath is the GitHub CLI binary looked up on PATH.
	DefaultGhPath = "gh"
)

type Config struct {
	Repository  string `mapstructure:"repository"`
	Workflow    string `mapstructure:"workflow"`
	GhPath      string `mapstructure:"gh_path"`
	GithubToken string `mapstructure:"github_token"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Workflow: DefaultWorkflow,
		GhPath:   DefaultGhPath,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := ValidateRepository(c.Repository); err != nil {
		return fmt.Errorf("invalid repository configuration: %w", err)
	}
	if c.Workflow == "" {
		return fmt.Errorf("workflow cannot be empty")
	}
	if strings.ContainsAny(c.Workflow, "/\\") {
		return fmt.Errorf("workflow must be a file name, not a path: %s", c.Workflow)
	}
	if c.GhPath == "" {
		return fmt.Errorf("gh_path cannot be empty")
	}
	// The token is validated where it is consumed (the API-backed lister),
	// not here: an ambient GITHUB_TOKEN must never abort staging paths
	// that do not use it.
	return nil
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	// Validate token format patterns
	legacyPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	classicPAT := regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !legacyPAT.MatchString(token) &&
		!classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateRepository validates an owner/name repository slug.
func ValidateRepository(slug string) error {
	owner, repo, err := SplitRepository(slug)
	if err != nil {
		return err
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// SplitRepository splits an owner/name slug into its parts.
func SplitRepository(slug string) (string, string, error) {
	parts := strings.SplitN(slug, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be in owner/name format: %q", slug)
	}
	return parts[0], parts[1], nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".tz-stage")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("TZ_STAGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	if err := viper.BindEnv("repository", "GITHUB_REPOSITORY", "TZ_STAGE_REPOSITORY"); err != nil {
		return nil, fmt.Errorf("failed to bind repository env: %w", err)
	}
	if err := viper.BindEnv("workflow", "TZ_STAGE_WORKFLOW"); err != nil {
		return nil, fmt.Errorf("failed to bind workflow env: %w", err)
	}
	if err := viper.BindEnv("gh_path", "GH_CLI", "TZ_STAGE_GH_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind gh_path env: %w", err)
	}
	if err := viper.BindEnv("github_token", "GITHUB_TOKEN", "TZ_STAGE_GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github_token env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("workflow", defaults.Workflow)
	viper.SetDefault("gh_path", defaults.GhPath)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	populateRepositoryDefault(&config)
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefault fills the repository slug when flags and
// environment left it empty: origin remote of the working directory first,
// then the fixed fallback.
func populateRepositoryDefault(cfg *Config) {
	if cfg.Repository != "" {
		return
	}
	if slug, err := repositoryFromGitRemote("."); err == nil {
		cfg.Repository = slug
		return
	}
	cfg.Repository = DefaultRepository
}

// repositoryFromGitRemote derives an owner/name slug from the origin
// remote of the repository at path.
func repositoryFromGitRemote(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("failed to open git repository: %w", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	owner, name, err := parseGitRemoteURL(urls[0])
	if err != nil {
		return "", err
	}
	return owner + "/" + name, nil
}

// parseGitRemoteURL extracts owner and repository from an https, ssh, or
// filesystem remote URL.
func parseGitRemoteURL(raw string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	// Normalize the ssh host:path separator so all forms split the same way
	trimmed = strings.ReplaceAll(trimmed, ":", "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot derive owner/name from remote URL: %s", raw)
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("cannot derive owner/name from remote URL: %s", raw)
	}
	return owner, repo, nil
}
