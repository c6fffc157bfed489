package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"shelfsend/internal/app"
	"shelfsend/internal/config"
	"shelfsend/internal/database"
	"shelfsend/internal/ipc"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a ShelfApp. The caller must defer app.Close(),
// which also removes anything staged during the command.
func newApp() (*app.ShelfApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewShelfApp(cfg, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "shelfsend",
	Short: "Stage files in a scratch area until the session ends",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		cfg.Staging.CacheRoot = defaults.CacheRoot

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:   %s\n", defaults.BaseDir)
		fmt.Printf("Cache Root: %s\n", defaults.CacheRoot)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Staging:     %s\n", cfg.Staging.Type)
		fmt.Printf("Cache Root:  %s\n", cfg.Staging.CacheRoot)
		fmt.Printf("History:     %s\n", cfg.History.Type)

		path, err := database.HistoryPath(cfg.History)
		if err != nil {
			return fmt.Errorf("invalid history config: %w", err)
		}
		fmt.Printf("History DB:  %s\n", path)
		if cfg.History.Type != "sqlite" {
			return nil
		}
		switch err := database.CheckSchema(path); {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Println("Schema:      not created yet")
		case err != nil:
			fmt.Printf("Schema:      %v\n", err)
		default:
			fmt.Println("Schema:      up to date")
		}
		return nil
	},
}

// session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Serve staging commands on stdin until quit, EOF, or a signal",
	Long: `Reads one JSON request per line from stdin and writes one JSON response
per line to stdout. Staged files are removed when the session ends.

  {"cmd":"stage_files","paths":["/path/a.txt"]}
  {"cmd":"get_file_size","path":"/path/a.txt"}
  {"cmd":"list_staged"}
  {"cmd":"describe_sources","paths":["/path/a.txt"]}
  {"cmd":"clear_staging"}
  {"cmd":"quit"}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := a.Hooks().NotifyOnSignal(cmd.Context())
		defer stop()

		s := ipc.NewSession(a, os.Stdin, os.Stdout, a.Logger())
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("session: %w", err)
		}
		return nil
	},
}

// size command
var sizeCmd = &cobra.Command{
	Use:   "size PATH",
	Short: "Show the size of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		size, err := a.GetFileSize(args[0])
		if err != nil {
			return fmt.Errorf("failed to get file size: %w", err)
		}

		raw, _ := cmd.Flags().GetBool("bytes")
		if raw {
			fmt.Println(size)
			return nil
		}
		fmt.Printf("%s  %s\n", humanize.IBytes(uint64(size)), args[0])
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View staging operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No staging operations recorded.")
			return nil
		}

		for _, op := range ops {
			d := op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond)
			fmt.Printf("#%d  %-13s  %s  entries:%-4d failures:%-4d %s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Entries,
				op.Failures,
				d,
				humanize.Time(op.StartedAt),
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(sizeCmd)
	sizeCmd.Flags().BoolP("bytes", "b", false, "Print the size in bytes only")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
