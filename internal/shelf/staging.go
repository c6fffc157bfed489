package shelf

// Registry tracks files copied into the scratch directory.
// Stage and Clear are mutually exclusive; implementations must be safe
// for concurrent use.
type Registry interface {
	// Stage copies each source with a file-name component into the scratch
	// directory and appends its destination, whether or not the copy worked.
	// The result carries the full registry contents in insertion order.
	Stage(sourcePaths []string) *StageResult

	// Clear removes every tracked file and empties the registry.
	// Removal failures never keep an entry alive.
	Clear() *ClearResult

	// Entries returns a snapshot of the tracked destination paths.
	Entries() []string

	// Len returns the number of tracked entries.
	Len() int

	// SizeOf returns the byte length of the file at path.
	SizeOf(path string) (int64, error)
}

// ScratchResolver supplies the directory staged copies are written to.
type ScratchResolver interface {
	// Resolve returns the scratch directory path, creating it if it is
	// missing. Creation is best-effort; the path is returned either way.
	Resolve() string
}

// StageResult describes one Stage call.
type StageResult struct {
	// Staged is every tracked destination path, oldest first.
	Staged []string
	// Copied counts sources whose bytes reached the scratch directory.
	Copied int
	// Skipped counts sources with no file-name component.
	Skipped int
	// Failures holds copy errors. Their entries are still tracked.
	Failures []*PathError
}

// ClearResult describes one Clear call.
type ClearResult struct {
	// Dropped is the number of entries tracked before the clear.
	Dropped int
	// Removed counts files actually deleted from disk.
	Removed int
	// Failures holds removal errors. Their entries are dropped anyway.
	Failures []*PathError
}

// PathError is a best-effort failure tied to a single path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }
