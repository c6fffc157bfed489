package shelf

import "time"

// Operation names recorded in the history.
const (
	OperationStage    = "stage_files"
	OperationClear    = "clear_staging"
	OperationShutdown = "shutdown"
)

// Operation is one recorded registry mutation.
// It is an audit trail only; registry state is never rebuilt from it.
type Operation struct {
	ID         int64
	SessionID  string
	Operation  string
	StartedAt  time.Time
	FinishedAt time.Time
	// Entries is the registry length after the operation.
	Entries  int
	Failures int
}

// History stores the operations performed by staging sessions.
type History interface {
	// Record persists op and assigns its ID.
	Record(op *Operation) error

	// List returns up to limit operations, newest first.
	List(limit int) ([]*Operation, error)

	// Close releases the underlying storage.
	Close() error
}
