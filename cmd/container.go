package cmd

import (
	"os/exec"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/terrazul-ai/stage-release/internal/config"
	"github.com/terrazul-ai/stage-release/internal/repository"
	"github.com/terrazul-ai/stage-release/internal/service"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo repository.FileSystemRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	return &container{
		cfg:    cfg,
		log:    log,
		fsRepo: fsRepo,
	}, nil
}

// newLogger builds the structured logger, writing to stderr so delegate
// output on stdout stays clean.
func newLogger() (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	return logCfg.Build()
}

// newRunRepository picks the listing implementation: the gh CLI when its
// binary resolves, otherwise the GitHub API when a token is configured.
// A missing gh binary is not fatal here - the ambient fast path may never
// issue a listing call.
func (c *container) newRunRepository(ghPath string) (repository.WorkflowRunRepository, error) {
	if _, err := exec.LookPath(ghPath); err == nil {
		return repository.NewGhRunRepository(ghPath), nil
	}
	if c.cfg.GithubToken != "" {
		c.log.Debug("gh binary not found, falling back to the GitHub API",
			zap.String("gh", ghPath))
		return repository.NewGithubRunRepository(c.cfg.GithubToken)
	}
	return repository.NewGhRunRepository(ghPath), nil
}

// newDelegateService resolves the co-located stage delegate.
func (c *container) newDelegateService() service.DelegateService {
	return service.NewDelegateService(c.fsRepo, "")
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(NewStageCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
