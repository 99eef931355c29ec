// Package cmd wires the CLI commands and the editor program startup.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/maemreyo/glean-teleprompter/internal/autosave"
	"github.com/maemreyo/glean-teleprompter/internal/config"
	"github.com/maemreyo/glean-teleprompter/internal/editor"
	"github.com/maemreyo/glean-teleprompter/internal/history"
	"github.com/maemreyo/glean-teleprompter/internal/log"
	"github.com/maemreyo/glean-teleprompter/internal/prompter"
	"github.com/maemreyo/glean-teleprompter/internal/quota"
	"github.com/maemreyo/glean-teleprompter/internal/storage"
	"github.com/maemreyo/glean-teleprompter/internal/ui/app"
	"github.com/maemreyo/glean-teleprompter/internal/ui/workspace"
	"github.com/maemreyo/glean-teleprompter/internal/watcher"
)

var configPathFlag string

var rootCmd = &cobra.Command{
	Use:   "glean",
	Short: "A teleprompter script editor with durable local drafts",
	Long: `Glean is a teleprompter script editor. Every change is recorded into
bounded undo history and auto-saved to a local store, so a crash or an
accidental quit never loses more than a second of work.`,
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "config file (default: .glean/config.yaml or user config dir)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configPath() string {
	if configPathFlag != "" {
		return configPathFlag
	}
	return config.DefaultConfigPath()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Log.File != "" {
		if err := log.Init(cfg.Log.File, logLevel(cfg.Log.Level)); err != nil {
			return config.Config{}, fmt.Errorf("opening log file: %w", err)
		}
	}
	return cfg, nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openStore(cfg config.Config) (*storage.FileDriver, *quota.Monitor, error) {
	drv, err := storage.NewFileDriver(cfg.Store.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store %s: %w", cfg.Store.Dir, err)
	}
	return drv, quota.NewMonitor(drv, cfg.Store.CapacityBytes), nil
}

// saverFunc adapts a closure to the editor.Saver interface so the store and
// the orchestrator can be constructed in either order.
type saverFunc func()

func (f saverFunc) NotifyChange() { f() }

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	drv, monitor, err := openStore(cfg)
	if err != nil {
		return err
	}

	mgr := history.NewManager(cfg.History.MaxEntries)

	var orch *autosave.Orchestrator
	notify := func() {
		if orch != nil {
			orch.NotifyChange()
		}
	}
	rec := history.NewRecorder(mgr,
		time.Duration(cfg.History.CoalesceWindowMS)*time.Millisecond,
		func(history.Entry) { notify() })
	defer rec.Close()

	store := editor.New(prompter.DefaultConfig(), mgr, rec, saverFunc(notify))

	orch = autosave.New(drv, monitor, store,
		autosave.WithDebounce(time.Duration(cfg.Autosave.DebounceMS)*time.Millisecond),
		autosave.WithCheckpoint(time.Duration(cfg.Autosave.CheckpointMS)*time.Millisecond),
	)
	defer orch.Close()

	restoreStartupState(drv, store, orch)

	w, err := watcher.New(watcher.Config{Path: drv.Path(storage.KeyActiveDraft)})
	if err != nil {
		return fmt.Errorf("watching store: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching store: %w", err)
	}
	defer func() { _ = w.Stop() }()

	ctx := cmd.Context()
	statusCh := orch.Broker().Subscribe(ctx)
	storeCh := w.Broker().Subscribe(ctx)

	orch.Start()

	ws := workspace.New(workspace.Deps{
		Store:          store,
		SaveNow:        orch.SaveNow,
		DismissWarning: orch.DismissWarning,
		StatusCh:       statusCh,
		StoreCh:        storeCh,
	})
	p := tea.NewProgram(app.New(ws), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}

	// Flush before the session write so the draft carries the final edits.
	if res := orch.Flush(); res.Err != nil {
		fmt.Fprintf(os.Stderr, "warning: final save failed: %v\n", res.Err)
	}
	if err := editor.SaveSession(drv, store, editor.UIPrefs{}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: session save failed: %v\n", err)
	}
	return nil
}

// restoreStartupState loads the active draft and layers the saved session
// on top. A corrupt or missing store starts a fresh document.
func restoreStartupState(drv storage.Driver, store *editor.Store, orch *autosave.Orchestrator) {
	draft, outcome, err := autosave.LoadActiveDraft(drv)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn(log.CatStorage, "active draft unreadable, starting fresh", "error", err)
		}
		return
	}
	log.Info(log.CatStorage, "active draft loaded", "outcome", outcome.String())

	orch.Adopt(draft)
	store.SetAll(draft.Content, draft.Config(prompter.DefaultConfig()))

	_, _ = editor.TryRestoreSession(drv, store)
}
