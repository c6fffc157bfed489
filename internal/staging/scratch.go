package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"shelfsend/internal/shelf"
)

// DefaultDirName is the scratch subdirectory created under the cache root.
const DefaultDirName = "shelfsend_tmp"

// ScratchResolver implements shelf.ScratchResolver over an afero filesystem.
// The directory is fixed at construction and created on every Resolve, so a
// scratch directory deleted mid-session comes back on the next stage.
type ScratchResolver struct {
	fs     afero.Fs
	dir    string
	logger shelf.Logger
}

var _ shelf.ScratchResolver = (*ScratchResolver)(nil)

// NewScratchResolver creates a resolver for <cacheRoot>/<dirName>.
// An empty cacheRoot uses the platform cache directory; an empty dirName
// uses DefaultDirName.
func NewScratchResolver(afs afero.Fs, cacheRoot, dirName string, logger shelf.Logger) (*ScratchResolver, error) {
	if cacheRoot == "" {
		root, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("determining cache directory: %w", err)
		}
		cacheRoot = root
	}
	if dirName == "" {
		dirName = DefaultDirName
	}

	return &ScratchResolver{
		fs:     afs,
		dir:    filepath.Join(cacheRoot, dirName),
		logger: logger,
	}, nil
}

// Dir returns the scratch directory path without touching the filesystem.
func (s *ScratchResolver) Dir() string {
	return s.dir
}

// Resolve ensures the scratch directory exists and returns its path.
// A creation failure is logged and otherwise ignored; copies into a missing
// directory fail later and are reported by the registry.
func (s *ScratchResolver) Resolve() string {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		s.logger.Warn("creating scratch directory failed", "dir", s.dir, "error", err)
	}
	return s.dir
}
