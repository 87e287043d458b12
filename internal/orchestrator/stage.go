package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/terrazul-ai/stage-release/internal/domain"
	"github.com/terrazul-ai/stage-release/internal/service"
	"github.com/terrazul-ai/stage-release/internal/usecase"
)

// StageConfig contains configuration for one staging invocation.
type StageConfig struct {
	Version    *domain.Version
	Workflow   string
	Repository string
	GhPath     string
	StagingDir string // empty means scratch directory
}

// StageOrchestrator runs the linear staging workflow: acquire the staging
// directory, resolve the workflow run that built the SEA binaries, and
// hand both to the stage delegate.
type StageOrchestrator struct {
	resolveUC *usecase.ResolveRunUseCase
	stagingUC *usecase.PrepareStagingUseCase
	delegate  service.DelegateService
	log       *zap.Logger
}

// NewStageOrchestrator creates a new stage orchestrator.
func NewStageOrchestrator(
	resolveUC *usecase.ResolveRunUseCase,
	stagingUC *usecase.PrepareStagingUseCase,
	delegate service.DelegateService,
	log *zap.Logger,
) *StageOrchestrator {
	return &StageOrchestrator{
		resolveUC: resolveUC,
		stagingUC: stagingUC,
		delegate:  delegate,
		log:       log,
	}
}

// Execute runs the complete staging workflow. The scratch staging
// directory, when owned, is released whether staging succeeded or not.
func (o *StageOrchestrator) Execute(ctx context.Context, cfg StageConfig) (err error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultStageTimeout)
	defer cancel()

	staging, err := o.stagingUC.Execute(ctx, cfg.StagingDir)
	if err != nil {
		return fmt.Errorf("failed to prepare staging directory: %w", err)
	}
	defer func() {
		if relErr := staging.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	o.log.Info("staging release",
		zap.String("version", cfg.Version.String()),
		zap.String("repository", cfg.Repository),
		zap.String("workflow", cfg.Workflow),
		zap.String("staging_dir", staging.Path),
		zap.String("session_id", staging.SessionID),
	)

	req := &domain.ReleaseRequest{
		Version:    cfg.Version,
		Workflow:   cfg.Workflow,
		Repository: cfg.Repository,
		StagingDir: staging.Path,
		GhPath:     cfg.GhPath,
	}
	run, err := o.resolveUC.Execute(ctx, req)
	if err != nil {
		return err
	}
	o.log.Info("resolved workflow run",
		zap.String("run_id", run.ID),
		zap.String("run_url", run.URL),
	)

	if err := o.delegate.Invoke(ctx, cfg.Version.String(), staging.Path, run); err != nil {
		return err
	}
	o.log.Info("release staged", zap.String("staging_dir", staging.Path))
	return nil
}
