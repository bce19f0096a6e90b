package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/stickies/internal/app"
	"github.com/marcus/stickies/internal/config"
	"github.com/marcus/stickies/internal/keymap"
	"github.com/marcus/stickies/internal/plugin"
	"github.com/marcus/stickies/internal/pluginstore"
	"github.com/marcus/stickies/internal/state"
	"github.com/marcus/stickies/internal/stickynotes"
	"github.com/marcus/stickies/internal/styles"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	dataDir    string
	backend    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "stickies",
		Short: "Sticky notes for the terminal",
		Long: `Stickies keeps short reminders in a terminal side panel.
Run without arguments to open the panel, or use the subcommands to manage
notes from scripts.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (default "+config.ConfigPath()+")")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding note data (overrides storage.dir)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: file, bolt or sqlite (overrides storage.backend)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newRmCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.dataDir != "" {
		cfg.Storage.Dir = config.ExpandPath(o.dataDir)
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a text logger writing to w.
func (o *options) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the configured backend and a NoteStore on top of it.
// The caller closes the returned storage.
func openStore(cfg *config.Config, logger *slog.Logger) (*stickynotes.NoteStore, pluginstore.Storage, error) {
	storage, err := pluginstore.Open(pluginstore.Config{
		Backend:  cfg.Storage.Backend,
		Dir:      cfg.Storage.Dir,
		PluginID: stickynotes.PluginID,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)
	return stickynotes.NewNoteStore(storage, stickynotes.WithLogger(logger)), storage, nil
}

// withStore runs fn against the configured store, logging to stderr.
func (o *options) withStore(cmd *cobra.Command, fn func(store *stickynotes.NoteStore) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	store, storage, err := openStore(cfg, o.newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer storage.Close()
	return fn(store)
}

// runTUI opens the sticky notes panel in the terminal.
func runTUI(o *options) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	// State is optional; a broken state file only loses UI preferences.
	_ = state.Init()

	// The terminal belongs to Bubble Tea; logs go to a file.
	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.Storage.Dir, "stickies.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := o.newLogger(logFile)

	if !styles.IsValidTheme(cfg.UI.Theme.Name) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme.Name, "available", styles.ListThemes())
	}
	styles.ApplyTheme(cfg.UI.Theme.Name)

	store, storage, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	configPath := o.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	registry := plugin.NewRegistry(&plugin.Context{
		ConfigDir: filepath.Dir(configPath),
		DataDir:   cfg.Storage.Dir,
		Config:    cfg,
		Logger:    logger,
	})

	if cfg.Plugins.StickyNotes.Enabled {
		var pluginOpts []stickynotes.PluginOption
		if w, ok := storage.(pluginstore.Watcher); ok {
			pluginOpts = append(pluginOpts, stickynotes.WithChangeWatcher(w))
		}
		if err := registry.Register(stickynotes.New(store, pluginOpts...)); err != nil {
			return err
		}
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	model := app.New(registry, km, cfg)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
