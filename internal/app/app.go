package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"shelfsend/internal/config"
	"shelfsend/internal/database"
	"shelfsend/internal/lifecycle"
	"shelfsend/internal/shelf"
	"shelfsend/internal/staging"
)

// shutdownHookName identifies the staging cleanup in shutdown traces.
const shutdownHookName = "clear-staging"

// ShelfApp is the application layer between a host shell (the CLI session,
// a GUI bridge) and shelf.Service. It constructs all dependencies from config,
// registers staging cleanup as a shutdown hook, and releases resources on Close.
type ShelfApp struct {
	cfg       *config.Config
	registry  shelf.Registry
	history   shelf.History
	service   *shelf.Service
	hooks     *lifecycle.Hooks
	logger    shelf.Logger
	logFile   *os.File
	closeOnce sync.Once
	closeErr  error
}

// NewShelfApp creates a fully wired ShelfApp from the given config.
// Log lines go to the log file and, when logEcho is non-nil, to logEcho.
// The caller must call Close when done; Close runs the shutdown hooks.
func NewShelfApp(cfg *config.Config, logEcho io.Writer) (*ShelfApp, error) {
	sessionID := shelf.NewSessionID()

	l, logFile, err := newLogger(cfg.LogDir, sessionID, slog.LevelInfo, logEcho)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	registry, err := staging.NewRegistryFromConfig(cfg.Staging, logger)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating staging registry: %w", err)
	}

	history, err := database.NewHistoryFromConfig(cfg.History)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating history: %w", err)
	}

	svc := shelf.NewService(registry, history, logger, shelf.RealClock{}, sessionID)

	hooks := lifecycle.NewHooks()
	hooks.Trace(func(name string) {
		logger.Debug("running shutdown hook", "hook", name)
	})
	hooks.OnShutdown(shutdownHookName, svc.Shutdown)

	logger.Info("session started", "staging", cfg.Staging.Type, "history", cfg.History.Type)

	return &ShelfApp{
		cfg:      cfg,
		registry: registry,
		history:  history,
		service:  svc,
		hooks:    hooks,
		logger:   logger,
		logFile:  logFile,
	}, nil
}

// SessionID returns the identifier this session's log lines and history rows carry.
func (a *ShelfApp) SessionID() string {
	return a.service.SessionID()
}

// Hooks returns the shutdown hooks so the host shell can trigger them, for
// example from a signal handler.
func (a *ShelfApp) Hooks() *lifecycle.Hooks {
	return a.hooks
}

// Logger returns the session logger.
func (a *ShelfApp) Logger() shelf.Logger {
	return a.logger
}

// StageFiles copies the given files into the scratch directory and returns
// every staged destination path.
func (a *ShelfApp) StageFiles(sourcePaths []string) []string {
	return a.service.StageFiles(sourcePaths)
}

// ClearStaging removes all staged files.
func (a *ShelfApp) ClearStaging() {
	a.service.ClearStaging()
}

// GetFileSize returns the byte length of the file at path.
func (a *ShelfApp) GetFileSize(path string) (int64, error) {
	return a.service.GetFileSize(path)
}

// Staged returns the currently staged destination paths.
func (a *ShelfApp) Staged() []string {
	return a.service.Staged()
}

// DescribeSources returns display names and sizes for source paths.
func (a *ShelfApp) DescribeSources(sourcePaths []string) []*shelf.SourceInfo {
	return a.service.DescribeSources(sourcePaths)
}

// GetHistory returns the most recent operations across all sessions.
func (a *ShelfApp) GetHistory(limit int) ([]*shelf.Operation, error) {
	return a.service.GetHistory(limit)
}

// Close runs the shutdown hooks, which remove every staged file, and then
// closes the history and log file. Calling Close more than once is safe.
func (a *ShelfApp) Close() error {
	a.closeOnce.Do(func() {
		a.hooks.Shutdown()
		// A signal-triggered shutdown can race a stage request still in flight.
		if a.registry.Len() > 0 {
			a.service.Shutdown()
		}
		a.logger.Info("session finished")

		if err := a.history.Close(); err != nil {
			a.closeErr = fmt.Errorf("closing history: %w", err)
		}
		if a.logFile != nil {
			a.logFile.Close()
		}
	})
	return a.closeErr
}
