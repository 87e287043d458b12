package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// ScratchDirPrefix names scratch staging directories under the system
	// temp root.
	ScratchDirPrefix = "tz-stage-"
	// LockFileName guards operator-supplied staging directories against
	// concurrent stagings.
	LockFileName = ".tz-stage.lock"
	// LockTimeout bounds how long staging waits for a competing process.
	LockTimeout = 30 * time.Second
	// LockRetryInterval is the poll interval while waiting for the lock.
	LockRetryInterval = 100 * time.Millisecond
	// StagingDirPermissions is the mode for created staging directories.
	StagingDirPermissions = 0755
)

// StagingDir is an acquired staging directory. Release must be called when
// the staging scope exits: it removes scratch directories, unlocks
// operator-supplied ones, and never deletes a directory this process did
// not create.
type StagingDir struct {
	Path      string
	SessionID string

	scratch bool
	fs      afero.Fs
	lock    *flock.Flock
}

// Release cleans up whatever the acquisition owned.
func (d *StagingDir) Release() error {
	if d.lock != nil {
		if err := d.lock.Unlock(); err != nil {
			return fmt.Errorf("failed to release staging lock: %w", err)
		}
	}
	if d.scratch {
		if err := d.fs.RemoveAll(d.Path); err != nil {
			return fmt.Errorf("failed to remove scratch staging directory: %w", err)
		}
	}
	return nil
}

// PrepareStagingUseCase acquires the staging directory for one invocation.

type PrepareStagingUseCase struct {
	Fs afero.Fs
}

// Execute returns the staging directory. An operator-supplied path is
// created if missing and locked; an empty path yields a scratch directory
// that Release removes.
func (uc *PrepareStagingUseCase) Execute(ctx context.Context, operatorPath string) (*StagingDir, error) {
	sessionID := uuid.New().String()
	if operatorPath == "" {
		return uc.scratchDir(sessionID)
	}
	return uc.operatorDir(ctx, operatorPath, sessionID)
}

func (uc *PrepareStagingUseCase) scratchDir(sessionID string) (*StagingDir, error) {
	path := filepath.Join(os.TempDir(), ScratchDirPrefix+sessionID)
	if err := uc.Fs.MkdirAll(path, StagingDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create scratch staging directory: %w", err)
	}
	return &StagingDir{
		Path:      path,
		SessionID: sessionID,
		scratch:   true,
		fs:        uc.Fs,
	}, nil
}

func (uc *PrepareStagingUseCase) operatorDir(
	ctx context.Context,
	path, sessionID string,
) (*StagingDir, error) {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staging directory: %w", err)
	}
	if err := uc.Fs.MkdirAll(abs, StagingDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	lock := flock.New(filepath.Join(abs, LockFileName))
	if err := acquireLock(ctx, lock); err != nil {
		return nil, err
	}
	return &StagingDir{
		Path:      abs,
		SessionID: sessionID,
		fs:        uc.Fs,
		lock:      lock,
	}, nil
}

// acquireLock polls for the staging lock on a constant backoff bounded by
// LockTimeout.
func acquireLock(ctx context.Context, lock *flock.Flock) error {
	backoff := retry.WithMaxDuration(LockTimeout, retry.NewConstant(LockRetryInterval))
	return retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire staging lock: %w", err)
		}
		if !locked {
			return retry.RetryableError(fmt.Errorf("staging directory is locked by another process"))
		}
		return nil
	})
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
