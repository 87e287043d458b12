package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/terrazul-ai/stage-release/internal/domain"
)

// DefaultListTimeout bounds the gh listing call.
const DefaultListTimeout = 60 * time.Second

// ghRunRepository lists workflow runs through the GitHub CLI.
type ghRunRepository struct {
	ghPath string
	// timeout for command execution
	timeout time.Duration
}

// NewGhRunRepository creates a WorkflowRunRepository backed by the gh
// binary at the given path.
func NewGhRunRepository(ghPath string) WorkflowRunRepository {
	return &ghRunRepository{
		ghPath:  ghPath,
		timeout: DefaultListTimeout,
	}
}

// ListRuns runs gh run list with databaseId, headBranch, and url projected
// per entry. The payload must be a JSON array; anything else is rejected.
func (r *ghRunRepository) ListRuns(
	ctx context.Context,
	repository, workflow string,
	limit int,
) ([]domain.RunListEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{
		"run", "list",
		"--repo", repository,
		"--workflow", workflow,
		"--json", "databaseId,headBranch,url", // url is populated for CLI >=2.34
		"--limit", strconv.Itoa(limit),
	}
	cmd := exec.CommandContext(ctx, r.ghPath, args...)

	// Capture both stdout and stderr for better error handling
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("gh run list timed out after %v", r.timeout)
		}
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("gh run list failed: %w (stderr: %s)", err, errMsg)
		}
		return nil, fmt.Errorf("gh run list failed: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("gh run list returned no output")
	}

	var entries []domain.RunListEntry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		return nil, fmt.Errorf("unexpected gh run list payload: %w", err)
	}
	return entries, nil
}
