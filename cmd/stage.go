package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrazul-ai/stage-release/internal/domain"
	"github.com/terrazul-ai/stage-release/internal/orchestrator"
	"github.com/terrazul-ai/stage-release/internal/usecase"
)

// NewStageCmd creates the stage command
func NewStageCmd(c *container) *cobra.Command {
	var (
		stageReleaseVersion string
		stageTmp            string
		stageWorkflow       string
		stageRepo           string
		stageGh             string
	)
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Stage npm artifacts using SEA binaries from the release workflow",
		Long: `Stage a release by assembling npm assets and SEA binaries.

The command locates the workflow run that built the SEA binaries for the
given version (by the sea-v<version> branch convention), then invokes the
co-located stage delegate with the run coordinates. When --tmp is omitted
a scratch staging directory is created and removed when staging finishes,
successfully or not. An operator-supplied --tmp directory is created if
missing and never removed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := domain.NewVersion(stageReleaseVersion)
			if err != nil {
				return fmt.Errorf("invalid --release-version: %w", err)
			}
			repo := firstNonEmpty(stageRepo, c.cfg.Repository)
			workflow := firstNonEmpty(stageWorkflow, c.cfg.Workflow)
			ghPath := firstNonEmpty(stageGh, c.cfg.GhPath)

			runRepo, err := c.newRunRepository(ghPath)
			if err != nil {
				return err
			}
			orch := orchestrator.NewStageOrchestrator(
				&usecase.ResolveRunUseCase{RunRepo: runRepo},
				&usecase.PrepareStagingUseCase{Fs: c.fsRepo},
				c.newDelegateService(),
				c.log,
			)
			return orch.Execute(cmd.Context(), orchestrator.StageConfig{
				Version:    version,
				Workflow:   workflow,
				Repository: repo,
				GhPath:     ghPath,
				StagingDir: stageTmp,
			})
		},
	}

	cmd.Flags().StringVar(&stageReleaseVersion, "release-version", "",
		"Semantic version to embed in the staged npm package (without the sea-v prefix)")
	cmd.Flags().StringVar(&stageTmp, "tmp", "",
		"Existing directory to use for staging (default: create temporary directory)")
	cmd.Flags().StringVar(&stageWorkflow, "workflow", "",
		"Workflow file name that produced the artifacts (default: release.yml)")
	cmd.Flags().StringVar(&stageRepo, "repo", "",
		"GitHub repository in owner/name format (default derived from environment)")
	cmd.Flags().StringVar(&stageGh, "gh", "",
		"Path to the GitHub CLI binary (default: gh)")
	_ = cmd.MarkFlagRequired("release-version")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
