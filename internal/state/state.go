package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Paintersrp/dictcheck/internal/check"
	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/constants"
	"github.com/Paintersrp/dictcheck/internal/document"
	"github.com/Paintersrp/dictcheck/internal/hotkey"
	"github.com/Paintersrp/dictcheck/internal/notify"
	"github.com/Paintersrp/dictcheck/internal/pathutil"
)

type State struct {
	Config     *config.Config
	ConfigPath string
	Home       string
	Logger     *slog.Logger
	Files      *document.FileReader
	Documents  document.Reader
	Registry   *hotkey.ShortcutRegistry
	Simulator  *hotkey.Simulator
	Notifier   notify.Notifier
	Watcher    *ReferenceWatcher
}

// Options tune NewState. Zero values pick the defaults.
type Options struct {
	ConfigPath string
	Verbose    bool
	Stderr     io.Writer
	// Notices receives user-facing notices; it defaults to Stderr.
	Notices io.Writer
}

func NewState(opts Options) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.GetConfigPath(home)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := NewLogger(stderr, opts.Verbose)

	notices := opts.Notices
	if notices == nil {
		notices = stderr
	}

	s := &State{
		Config:     cfg,
		ConfigPath: configPath,
		Home:       home,
		Logger:     logger,
		Registry:   hotkey.NewShortcutRegistry(logger),
		Notifier:   notify.New(notices, cfg.NoticeDuration.Duration),
	}
	s.rebuild()

	return s, nil
}

// rebuild derives the readers and the simulator from the current settings.
func (s *State) rebuild() {
	cfg := s.Config
	s.Files = document.NewFileReader(pathutil.ExpandHome(cfg.VaultDir))
	s.Documents = &document.Router{
		Files:   s.Files,
		Objects: document.NewLazyS3Reader(cfg.Storage.S3),
	}
	s.Simulator = hotkey.NewSimulator(
		s.Registry,
		hotkey.NewDispatcher(cfg.DispatchMode, hotkey.Bindings(cfg.Bindings), s.Logger),
		cfg.UnregisterDelay.Duration,
		s.Logger,
	)
}

// Reload re-reads settings from disk, picking up edits made elsewhere. The
// config is updated in place so holders of s.Config see the new values.
func (s *State) Reload() error {
	cfg, err := config.LoadFile(s.ConfigPath)
	if err != nil {
		return err
	}
	*s.Config = *cfg
	s.rebuild()
	return nil
}

// SettingsChanged rebuilds the readers and simulator after the settings
// were edited in place.
func (s *State) SettingsChanged() {
	s.rebuild()
}

// ReferenceStatus reads and summarises the configured reference document.
func (s *State) ReferenceStatus(ctx context.Context) document.Status {
	return document.Inspect(ctx, s.Documents, s.Config.FilePath)
}

// Checker assembles the check operation from the state's collaborators.
func (s *State) Checker() *check.Checker {
	return check.New(s.Documents, s.Notifier, s.Simulator, s.Logger).WithConfigPath(s.ConfigPath)
}

// ReferencePath resolves the configured reference document on disk. It
// returns "" for unset and s3:// paths.
func (s *State) ReferencePath() (string, error) {
	path := s.Config.FilePath
	if path == "" || document.IsS3Path(path) {
		return "", nil
	}
	return s.Files.Resolve(path)
}

// WatchReference starts watching the reference document, replacing any
// previous watcher.
func (s *State) WatchReference() (*ReferenceWatcher, error) {
	if s.Watcher != nil {
		_ = s.Watcher.Close()
	}

	path, err := s.ReferencePath()
	if err != nil || path == "" {
		return nil, err
	}

	w, err := NewReferenceWatcher(path)
	if err != nil {
		return nil, err
	}
	w.OnChange(func(p string) {
		s.Logger.Debug("reference document changed", "path", p)
	})
	w.OnClose(func() {
		s.Logger.Debug("stopped watching reference document", "path", w.Path())
		if s.Watcher == w {
			s.Watcher = nil
		}
	})
	s.Watcher = w
	return w, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(configPath string) (*config.Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType(constants.ConfigFileType)

	if err := config.EnsureConfigExists(configPath); err != nil {
		return nil, err
	}
	_ = viper.ReadInConfig()

	return config.LoadFile(configPath)
}

// NewLogger returns the text logger used across commands.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if env := strings.TrimSpace(os.Getenv("DICTCHECK_LOG")); env != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(env)); err == nil {
			level = parsed
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close waits for pending hotkey releases and stops the watcher.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	if s.Simulator != nil {
		s.Simulator.Wait()
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
