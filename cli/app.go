package cli

import (
	"context"

	"github.com/gear6io/fixturegen/config"
	"github.com/gear6io/fixturegen/formats/builtin"
	"github.com/gear6io/fixturegen/generator"
	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
	"github.com/gear6io/fixturegen/storage/filesystem"
	"github.com/gear6io/fixturegen/storage/memory"
	"github.com/gear6io/fixturegen/storage/minio"
	"github.com/gear6io/fixturegen/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Package-specific error codes
var (
	CLIAppNotInitialized = errors.MustNewCode("cli.app_not_initialized")
)

// App holds what a command run needs, built once per invocation.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	RunID     string
	Generator *generator.Generator

	logManager *config.LogManager
}

type appKey struct{}

type globalOptions struct {
	configPath string
	verbose    bool
	logLevel   string
	logFormat  string
}

func addGlobalFlags(cmd *cobra.Command, opts *globalOptions) {
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultConfigFile+" when present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (auto, console, json)")
}

// newApp loads configuration and wires logging, codecs and storage engines.
func newApp(opts *globalOptions) (*App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if opts.logLevel != "" || opts.logFormat != "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	runID := utils.NewRunIDString()
	logger, logManager, err := config.SetupLogger(cfg, runID)
	if err != nil {
		return nil, err
	}

	codecs, err := builtin.NewRegistry(cfg.CodecOptions())
	if err != nil {
		return nil, err
	}

	engines := storage.NewStorageEngineRegistry(logger)
	engines.RegisterEngine(filesystem.NewFileStorage())
	engines.RegisterEngine(memory.NewMemoryStorage())
	if cfg.S3.Enabled() {
		s3, err := minio.NewS3FileSystem(cfg.MinioConfig())
		if err != nil {
			return nil, err
		}
		engines.RegisterEngine(s3)
	}

	gen := generator.New(codecs, engines,
		generator.WithFallback(cfg.Output.Fallback),
		generator.WithLogger(logger),
	)

	logger.Debug().
		Strs("codecs", formatNames(codecs.Formats())).
		Str("config", opts.configPath).
		Msg("Initialized")

	return &App{
		Config:     cfg,
		Logger:     logger,
		RunID:      runID,
		Generator:  gen,
		logManager: logManager,
	}, nil
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.logManager != nil {
		return a.logManager.Close()
	}
	return nil
}

// withApp installs PersistentPreRunE/PostRunE hooks that build the App and
// attach it to the command context.
func withApp(cmd *cobra.Command, opts *globalOptions) {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, err := newApp(opts)
		if err != nil {
			return err
		}
		cmd.SetContext(context.WithValue(ctx, appKey{}, app))
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app, err := appFrom(cmd); err == nil {
			return app.Close()
		}
		return nil
	}
}

func appFrom(cmd *cobra.Command) (*App, error) {
	if ctx := cmd.Context(); ctx != nil {
		if app, ok := ctx.Value(appKey{}).(*App); ok {
			return app, nil
		}
	}
	return nil, errors.New(CLIAppNotInitialized, "command context has no app", nil).AddContext("cmd", cmd.Name())
}
