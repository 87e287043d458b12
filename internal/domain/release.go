package domain

import "fmt"

// BranchPrefix is the naming convention for branches that carry SEA binary
// builds: one sea-v<version> branch per release.
const BranchPrefix = "sea-v"

// ReleaseRequest holds the parsed inputs for one staging invocation.
// Immutable once built from flags and configuration.

type ReleaseRequest struct {
	Version    *Version
	Workflow   string
	Repository string
	StagingDir string
	GhPath     string
}

// BranchName returns the build branch expected to have produced the SEA
// binaries for the requested version.
func (r *ReleaseRequest) BranchName() string {
	return BranchPrefix + r.Version.String()
}

// WorkflowRun identifies the automation run that built the release
// artifacts. It lives for exactly one program execution.

type WorkflowRun struct {
	ID  string
	URL string
}

// RunListEntry is one run as projected by the listing call
// (gh run list --json databaseId,headBranch,url). Only HeadBranch is
// matched; DatabaseID and URL are projected into a WorkflowRun.

type RunListEntry struct {
	DatabaseID int64  `json:"databaseId"`
	HeadBranch string `json:"headBranch"`
	URL        string `json:"url"`
}

// RunURL builds the canonical run URL for runs whose listing entry omits
// the url field (older CLI versions) and for the ambient fast path.
func RunURL(repository, runID string) string {
	return fmt.Sprintf("https://github.com/%s/actions/runs/%s", repository, runID)
}
