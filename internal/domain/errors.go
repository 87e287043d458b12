package domain

import (
	"errors"
	"fmt"
)

// ErrDelegateNotFound reports that the co-located stage delegate is missing.
// Surfaced before any delegation side effects occur.
var ErrDelegateNotFound = errors.New("stage delegate not found")

// ResolutionError reports that no workflow run could be resolved for a
// release branch, either because the listing call failed or because no
// listed run was built from that branch. Never retried: a run that does
// not exist yet would need polling logic this tool does not implement.
type ResolutionError struct {
	Branch string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to locate workflow run for %s: %v", e.Branch, e.Err)
	}
	return fmt.Sprintf(
		"unable to locate workflow run for %s: ensure the matrix build finished successfully",
		e.Branch,
	)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// DelegateExitError preserves the delegate's non-zero exit status verbatim.
// The delegate's internal failure reasons are not interpreted.
type DelegateExitError struct {
	Code int
}

func (e *DelegateExitError) Error() string {
	return fmt.Sprintf("stage delegate exited with status %d", e.Code)
}
