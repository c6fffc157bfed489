package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"shelfsend/internal/shelf"
	"shelfsend/internal/staging"
)

// TestCacheRoot is the cache root used by test registries.
const TestCacheRoot = "/cache"

// NewTestRegistry creates a registry over an in-memory filesystem rooted at
// TestCacheRoot. Write sources into the returned filesystem before staging.
func NewTestRegistry(t *testing.T) (*staging.Registry, afero.Fs) {
	t.Helper()
	afs := afero.NewMemMapFs()
	return newRegistry(t, afs), afs
}

// NewReadOnlyTestRegistry creates a registry whose filesystem rejects every
// write, so all copies and removals fail. Seed sources through the returned
// base filesystem.
func NewReadOnlyTestRegistry(t *testing.T) (*staging.Registry, afero.Fs) {
	t.Helper()
	base := afero.NewMemMapFs()
	return newRegistry(t, afero.NewReadOnlyFs(base)), base
}

// ScratchPath returns where a test registry stages a file named name.
func ScratchPath(name string) string {
	return filepath.Join(TestCacheRoot, staging.DefaultDirName, name)
}

func newRegistry(t *testing.T, afs afero.Fs) *staging.Registry {
	t.Helper()
	resolver, err := staging.NewScratchResolver(afs, TestCacheRoot, "", shelf.NewNopLogger())
	if err != nil {
		t.Fatalf("failed to create scratch resolver: %v", err)
	}
	return staging.NewRegistry(afs, resolver)
}
