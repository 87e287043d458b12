package usecase

import (
	"context"
	"os"
	"strconv"

	"github.com/terrazul-ai/stage-release/internal/domain"
	"github.com/terrazul-ai/stage-release/internal/repository"
)

// RunListLimit caps how many recent runs the lookup path inspects.
const RunListLimit = 20

// ResolveRunUseCase locates the workflow run that built the SEA binaries
// for a release.

type ResolveRunUseCase struct {
	RunRepo repository.WorkflowRunRepository
}

// Execute resolves the workflow run for the request. When this process is
// itself a step of the run that produced the binaries, GITHUB_RUN_ID is
// authoritative and no listing call is made.
func (uc *ResolveRunUseCase) Execute(
	ctx context.Context,
	req *domain.ReleaseRequest,
) (*domain.WorkflowRun, error) {
	if runID := os.Getenv("GITHUB_RUN_ID"); runID != "" {
		return &domain.WorkflowRun{
			ID:  runID,
			URL: domain.RunURL(req.Repository, runID),
		}, nil
	}

	branch := req.BranchName()
	entries, err := uc.RunRepo.ListRuns(ctx, req.Repository, req.Workflow, RunListLimit)
	if err != nil {
		return nil, &domain.ResolutionError{Branch: branch, Err: err}
	}
	// First match wins. The listing is most-recent-first by the service's
	// contract, and the sea-v branch pattern is assumed unique per release.
	for _, entry := range entries {
		if entry.HeadBranch != branch {
			continue
		}
		runID := strconv.FormatInt(entry.DatabaseID, 10)
		url := entry.URL
		if url == "" {
			url = domain.RunURL(req.Repository, runID)
		}
		return &domain.WorkflowRun{ID: runID, URL: url}, nil
	}
	return nil, &domain.ResolutionError{Branch: branch}
}
