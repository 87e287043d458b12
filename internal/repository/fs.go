package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem boundary for staging-directory
// management and delegate existence checks. Production wiring uses the OS
// filesystem; tests substitute an in-memory one.

type FileSystemRepository interface {
	afero.Fs
}
