package service

import (
	"context"

	"github.com/terrazul-ai/stage-release/internal/domain"
)

// DelegateService defines the interface for invoking the stage delegate,
// the external executable that assembles release artifacts into the
// staging directory.

type DelegateService interface {
	Invoke(ctx context.Context, version, stagingDir string, run *domain.WorkflowRun) error
}
