package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/terrazul-ai/stage-release/internal/domain"
)

// DelegateScriptName is the executable that performs the actual artifact
// assembly. It lives next to this binary, not on PATH.
const DelegateScriptName = "stage_release.sh"

// delegateService is the implementation of the DelegateService interface.
type delegateService struct {
	fs afero.Fs
	// scriptPath overrides the co-located resolution when set
	scriptPath string
}

// NewDelegateService creates a new DelegateService. An empty scriptPath
// resolves the delegate next to the running executable.
func NewDelegateService(fs afero.Fs, scriptPath string) DelegateService {
	return &delegateService{
		fs:         fs,
		scriptPath: scriptPath,
	}
}

// resolveScript locates the delegate executable.
func (s *delegateService) resolveScript() (string, error) {
	if s.scriptPath != "" {
		return s.scriptPath, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate own executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), DelegateScriptName), nil
}

// Invoke runs the delegate synchronously with the resolved run coordinates
// carried both as flags and as SEA_RELEASE_* environment defaults. A
// non-zero exit surfaces with its status preserved.
func (s *delegateService) Invoke(
	ctx context.Context,
	version, stagingDir string,
	run *domain.WorkflowRun,
) error {
	script, err := s.resolveScript()
	if err != nil {
		return err
	}
	if _, err := s.fs.Stat(script); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrDelegateNotFound, script)
		}
		return fmt.Errorf("failed to check delegate: %w", err)
	}

	args := []string{
		"--release-version", version,
		"--tmp", stagingDir,
		"--run-id", run.ID,
		"--run-url", run.URL,
	}
	cmd := exec.CommandContext(ctx, script, args...)
	// Stream output for CI visibility
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = overlayEnv(os.Environ(), map[string]string{
		"SEA_RELEASE_VERSION": version,
		"SEA_RELEASE_TMP":     stagingDir,
		"SEA_RELEASE_RUN_ID":  run.ID,
		"SEA_RELEASE_RUN_URL": run.URL,
	})

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &domain.DelegateExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("stage delegate failed: %w", err)
	}
	return nil
}

// overlayEnv appends defaults for keys the base environment does not
// already define. Caller-set values always win.
func overlayEnv(base []string, defaults map[string]string) []string {
	present := make(map[string]bool, len(base))
	for _, kv := range base {
		if idx := strings.Index(kv, "="); idx > 0 {
			present[kv[:idx]] = true
		}
	}
	env := base
	for key, value := range defaults {
		if !present[key] {
			env = append(env, key+"="+value)
		}
	}
	return env
}
