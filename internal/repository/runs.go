package repository

import (
	"context"

	"github.com/terrazul-ai/stage-release/internal/domain"
)

// WorkflowRunRepository defines the interface for listing automation runs
// of a named workflow. The listing is most-recent-first by the service's
// contract; implementations do not reorder it.

type WorkflowRunRepository interface {
	ListRuns(ctx context.Context, repository, workflow string, limit int) ([]domain.RunListEntry, error)
}
