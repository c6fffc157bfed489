package staging

import (
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"

	"shelfsend/internal/fs"
	"shelfsend/internal/shelf"
)

// Registry implements shelf.Registry. It copies sources into the directory
// supplied by a shelf.ScratchResolver and remembers every destination so a
// later Clear can delete them.
//
// Entries are appended whether or not the copy succeeded and are never
// deduplicated: staging two files with the same name yields two entries
// pointing at one destination, holding the bytes of the later source.
type Registry struct {
	fs       afero.Fs
	resolver shelf.ScratchResolver
	mu       sync.Mutex
	entries  []string
}

var _ shelf.Registry = (*Registry)(nil)

// NewRegistry creates an empty registry that writes through afs.
func NewRegistry(afs afero.Fs, resolver shelf.ScratchResolver) *Registry {
	return &Registry{
		fs:       afs,
		resolver: resolver,
	}
}

// Stage copies each source into the scratch directory and records its destination.
func (r *Registry) Stage(sourcePaths []string) *shelf.StageResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.resolver.Resolve()
	res := &shelf.StageResult{}

	for _, src := range sourcePaths {
		name, ok := fs.FileName(src)
		if !ok {
			res.Skipped++
			continue
		}

		dest := filepath.Join(dir, name)
		if err := fs.CopyFile(r.fs, src, dest); err != nil {
			res.Failures = append(res.Failures, &shelf.PathError{Path: src, Err: err})
		} else {
			res.Copied++
		}

		// Recorded even when the copy failed; Clear tolerates missing files.
		r.entries = append(r.entries, dest)
	}

	res.Staged = slices.Clone(r.entries)
	return res
}

// Clear removes every tracked file and empties the registry.
func (r *Registry) Clear() *shelf.ClearResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &shelf.ClearResult{Dropped: len(r.entries)}
	for _, p := range r.entries {
		if err := r.fs.Remove(p); err != nil {
			res.Failures = append(res.Failures, &shelf.PathError{Path: p, Err: err})
			continue
		}
		res.Removed++
	}

	r.entries = nil
	return res
}

// Entries returns a copy of the tracked destination paths, oldest first.
func (r *Registry) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}

// Len returns the number of tracked entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// SizeOf returns the byte length of the file at path. It does not consult
// the registry and takes no lock.
func (r *Registry) SizeOf(path string) (int64, error) {
	return fs.Size(r.fs, path)
}
