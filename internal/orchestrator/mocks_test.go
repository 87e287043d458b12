package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/terrazul-ai/stage-release/internal/domain"
)

// Mock for WorkflowRunRepository
type mockWorkflowRunRepository struct{ mock.Mock }

func (m *mockWorkflowRunRepository) ListRuns(
	ctx context.Context,
	repository, workflow string,
	limit int,
) ([]domain.RunListEntry, error) {
	args := m.Called(ctx, repository, workflow, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunListEntry), args.Error(1)
}

// Mock for DelegateService
type mockDelegateService struct{ mock.Mock }

func (m *mockDelegateService) Invoke(
	ctx context.Context,
	version, stagingDir string,
	run *domain.WorkflowRun,
) error {
	args := m.Called(ctx, version, stagingDir, run)
	return args.Error(0)
}
