package shelf

import (
	"fmt"
	"sync"
	"time"
)

// Service is the orchestration layer between the application shell and the
// staging registry. It logs the failures the registry downgrades and records
// every mutation in the session history.
type Service struct {
	// mu orders mutations and their history rows identically.
	mu sync.Mutex

	registry  Registry
	history   History
	logger    Logger
	clock     Clock
	sessionID string
}

// NewService creates a Service for one session.
func NewService(registry Registry, history History, logger Logger, clock Clock, sessionID string) *Service {
	return &Service{
		registry:  registry,
		history:   history,
		logger:    logger,
		clock:     clock,
		sessionID: sessionID,
	}
}

// SessionID returns the identifier operations are recorded under.
func (s *Service) SessionID() string {
	return s.sessionID
}

// StageFiles copies the given sources into the scratch directory and returns
// every staged destination path, including ones from earlier calls.
// Copy failures are logged; they never fail the call.
func (s *Service) StageFiles(sourcePaths []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.clock.Now()
	res := s.registry.Stage(sourcePaths)

	for _, f := range res.Failures {
		s.logger.Warn("copy to scratch failed", "path", f.Path, "error", f.Err)
	}
	s.logger.Info("files staged",
		"requested", len(sourcePaths),
		"copied", res.Copied,
		"skipped", res.Skipped,
		"entries", len(res.Staged),
	)

	s.record(OperationStage, started, len(res.Staged), len(res.Failures))
	return res.Staged
}

// ClearStaging removes every staged file and resets the registry.
func (s *Service) ClearStaging() {
	s.clear(OperationClear)
}

// Shutdown performs the same cleanup as ClearStaging. It is registered as a
// shutdown hook so staged files never outlive the session.
func (s *Service) Shutdown() {
	s.clear(OperationShutdown)
}

// clear records an operation only when something was staged, so opening
// and closing a session without staging leaves the history untouched.
func (s *Service) clear(operation string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.clock.Now()
	res := s.registry.Clear()
	if res.Dropped == 0 {
		s.logger.Debug("nothing staged", "operation", operation)
		return
	}

	for _, f := range res.Failures {
		s.logger.Warn("removing staged file failed", "path", f.Path, "error", f.Err)
	}
	s.logger.Info("staging cleared",
		"operation", operation,
		"dropped", res.Dropped,
		"removed", res.Removed,
	)

	s.record(operation, started, 0, len(res.Failures))
}

// GetFileSize returns the byte length of any file, staged or not.
func (s *Service) GetFileSize(path string) (int64, error) {
	size, err := s.registry.SizeOf(path)
	if err != nil {
		s.logger.Debug("file size lookup failed", "path", path, "error", err)
		return 0, err
	}
	return size, nil
}

// Staged returns the currently staged destination paths.
func (s *Service) Staged() []string {
	return s.registry.Entries()
}

// GetHistory returns the most recent operations, newest first.
func (s *Service) GetHistory(limit int) ([]*Operation, error) {
	ops, err := s.history.List(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

// record writes an operation to the history. History is an audit trail,
// so a failed write is logged and otherwise ignored.
func (s *Service) record(operation string, started time.Time, entries, failures int) {
	op := &Operation{
		SessionID:  s.sessionID,
		Operation:  operation,
		StartedAt:  started,
		FinishedAt: s.clock.Now(),
		Entries:    entries,
		Failures:   failures,
	}
	if err := s.history.Record(op); err != nil {
		s.logger.Warn("recording operation failed", "operation", operation, "error", err)
	}
}
