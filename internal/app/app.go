package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/modsnap/internal/compare"
	"github.com/five82/modsnap/internal/config"
	"github.com/five82/modsnap/internal/live"
	"github.com/five82/modsnap/internal/logging"
	"github.com/five82/modsnap/internal/snapshot"
	"github.com/five82/modsnap/internal/state"
	"github.com/five82/modsnap/internal/store"
	"github.com/five82/modsnap/internal/ui"
)

// ErrNoReference is returned by Env.Compare when the world holds no prior
// snapshot, so nothing can be compared.
var ErrNoReference = errors.New("no snapshot recorded for this world")

// Options configure a modsnap command.
type Options struct {
	ConfigPath string
	WorldDir   string
	Host       string // overrides the configured host
	Against    string // compare against this saved directory instead of the host
	LogLevel   string // overrides the configured level
	LogFile    string // overrides the configured file; "-" logs to stderr
	PollEvery  int    // seconds; zero uses the configured value
}

// Env holds what every command needs once config and logging are set up.
type Env struct {
	Config     config.Config
	ConfigPath string
	Logger     hclog.Logger
	Store      *store.Store
	// LogPath is the log file in use, or "" when logging to stderr.
	LogPath string

	opts   Options
	closer io.Closer
}

// Setup loads config, opens the log and binds the world directory. One-shot
// commands log to stderr unless a log file is configured.
func Setup(opts Options) (*Env, error) {
	return setup(opts, false)
}

func setup(opts Options, watch bool) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if host := strings.TrimSpace(opts.Host); host != "" {
		cfg.Host = host
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: logFile(cfg, opts, watch)}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	format, err := store.ParseFormat(cfg.Format)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	st, err := store.New(opts.WorldDir, format, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	return &Env{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		Store:      st,
		LogPath:    logOpts.File,
		opts:       opts,
		closer:     closer,
	}, nil
}

// logFile picks the log destination: the flag, then log_file, then the
// default state file for the TUI. "" means stderr.
func logFile(cfg config.Config, opts Options, watch bool) string {
	switch flag := strings.TrimSpace(opts.LogFile); flag {
	case "-":
		return ""
	case "":
	default:
		return flag
	}
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	if watch {
		return config.DefaultLogFile()
	}
	return ""
}

// Close releases the log file.
func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Source returns where the current snapshot comes from: a saved directory
// when Against is set, the host otherwise.
func (e *Env) Source() (live.Source, error) {
	if against := strings.TrimSpace(e.opts.Against); against != "" {
		format, err := store.ParseFormat(e.Config.Format)
		if err != nil {
			return nil, err
		}
		other, err := store.New(against, format, e.Logger.Named("against"))
		if err != nil {
			return nil, err
		}
		return live.StoreSource{Store: other}, nil
	}
	client, err := live.NewClient(e.Config.Host)
	if err != nil {
		return nil, fmt.Errorf("init live client: %w", err)
	}
	return client, nil
}

// Save fetches the current snapshot from the host and records it in the
// world directory.
func (e *Env) Save(ctx context.Context) (snapshot.Snapshot, error) {
	src, err := e.Source()
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	snap, err := src.FetchSnapshot(fetchCtx)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	if err := e.Store.Save(snap); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	mods, entries := snap.Len()
	e.Logger.Info("saved snapshot", "dir", e.Store.Dir(), "mods", mods, "entries", entries, "version", snap.EnvironmentVersion())
	return snap, nil
}

// Compare loads the recorded snapshot and compares the current one against
// it. It returns ErrNoReference, together with the diff, when the world has
// no usable snapshot.
func (e *Env) Compare(ctx context.Context) (compare.Diff, error) {
	reference := e.Store.Load()
	src, err := e.Source()
	if err != nil {
		return compare.Diff{}, err
	}
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	diff, err := Check(fetchCtx, reference, src)
	if err != nil {
		return compare.Diff{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	e.Logger.Info("compared snapshot", "dir", e.Store.Dir(), "usable", reference.Usable(), "summary", diff.Summary())
	if !reference.Usable() {
		return diff, ErrNoReference
	}
	return diff, nil
}

// Run boots the watch TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	src, err := env.Source()
	if err != nil {
		return err
	}
	reference := env.Store.Load()
	results := &state.Store{}

	interval := time.Duration(env.Config.PollSeconds) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval
	}

	// Populate the store before the UI starts so the first frame has data.
	// The poller waits one interval before its own first fetch.
	_ = refresh(ctx, results, reference, src, env.Logger)
	StartPoller(ctx, results, reference, src, interval, env.Logger)

	return ui.Run(ui.Options{
		Context:    ctx,
		Store:      results,
		Config:     &env.Config,
		ConfigPath: env.ConfigPath,
		World:      env.Store.Dir(),
		LogPath:    env.LogPath,
		PollTick:   time.Second,
	})
}
