package app

import (
	"errors"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"refman/src/internal/bibtex"
	"refman/src/internal/config"
	"refman/src/internal/logx"
	"refman/src/internal/store"
	"refman/src/internal/stringsx"
)

// App carries the resolved configuration and logger shared by all commands.
// The root command fills it before any subcommand runs.
type App struct {
	Config config.Config
	Logger log.Logger
}

// New returns an App with default settings and a discarding logger.
func New() *App {
	return &App{
		Config: config.Config{LogLevel: logx.DefaultLevel, Collision: bibtex.SuffixOnce.String()},
		Logger: log.NewNopLogger(),
	}
}

// Init loads configuration and builds the logger writing to logOut.
func (a *App) Init(cfg config.Config, logOut io.Writer) error {
	logger, err := logx.New(logOut, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Logger = logger
	if cfg.Source != "" {
		level.Debug(logger).Log("msg", "loaded config", "path", cfg.Source)
	}
	return nil
}

// Options returns the collection options implied by the configuration.
func (a *App) Options() []bibtex.Option {
	return []bibtex.Option{bibtex.WithPolicy(a.Config.Policy()), bibtex.WithLogger(a.Logger)}
}

// Path picks the library file: the first argument, else the configured
// file, else store.DefaultFile.
func (a *App) Path(args []string) string {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	return stringsx.FirstNonEmpty(arg, config.ExpandHome(a.Config.File), store.DefaultFile)
}

// Load reads path. Skipped entries are logged and do not fail the load.
func (a *App) Load(path string) (*bibtex.Collection, error) {
	c, err := store.Load(path, a.Options()...)
	return a.finishLoad(path, c, err)
}

// LoadOrEmpty is Load, treating a missing file as an empty library.
func (a *App) LoadOrEmpty(path string) (*bibtex.Collection, error) {
	c, err := store.LoadOrEmpty(path, a.Options()...)
	return a.finishLoad(path, c, err)
}

func (a *App) finishLoad(path string, c *bibtex.Collection, err error) (*bibtex.Collection, error) {
	if err != nil && !store.IsSkipped(err) {
		return nil, err
	}
	if err != nil {
		level.Warn(a.Logger).Log("msg", "entries skipped while loading", "path", path, "err", err)
	}
	level.Info(a.Logger).Log("msg", "loaded library", "path", path, "records", c.Len())
	return c, nil
}

// Save writes c to path.
func (a *App) Save(path string, c *bibtex.Collection) error {
	if path == "" {
		return errors.New("no save location")
	}
	if err := store.Save(path, c); err != nil {
		return err
	}
	level.Info(a.Logger).Log("msg", "saved library", "path", path, "records", c.Len())
	return nil
}
