// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/mandala/cli/config"
	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/web"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// GeneratorFactory builds the mandala generator for the resolved settings.
type GeneratorFactory func(s Settings, hook core.TelemetryHook) (web.Generator, error)

// Settings are the effective values after applying flags over the config file.
type Settings struct {
	Provider   string
	Model      core.ModelID
	ListenAddr string
	BaseURL    string
}

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig   ConfigLoader
	newGenerator GeneratorFactory
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	cfgFile      string
	provider     string
	model        string
	jsonOutput   bool
	verbose      bool
	cfg          *config.Config
	logger       *slog.Logger
	serveAddr    string
	outDir       string
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithGeneratorFactory injects a generator factory dependency.
func WithGeneratorFactory(factory GeneratorFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newGenerator = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:   config.LoadConfig,
		newGenerator: defaultGeneratorFactory,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mandala",
		Short: "Mandala - black and white mandala art from a single word",
		Long: `Mandala generates black and white mandala art inspired by a single word.

Run the web form with 'mandala serve', or generate one image from the
terminal with 'mandala generate <word>'. Your OpenAI API key is asked for
on every run and is never stored.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.mandala/config.yaml)")
	root.PersistentFlags().StringVar(&a.provider, "provider", "", "image provider ID (default openai)")
	root.PersistentFlags().StringVar(&a.model, "model", "", "image model ID (default dall-e-3)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(a.newServeCommand())
	root.AddCommand(a.newGenerateCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Errors not already shown to
// the user are printed to stderr.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err != nil {
		var ee *exitError
		if !errors.As(err, &ee) || !ee.reported {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
	}
	return err
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("load config: %w", err))
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, a.verbose)

	// Apply config defaults if flags not set.
	if a.provider == "" {
		a.provider = cfg.Provider
	}
	if a.model == "" {
		a.model = cfg.Model
	}

	a.logger.Debug("config loaded", "path", path, "provider", a.provider, "model", a.model)
	return nil
}

// settings resolves flags over the loaded config.
func (a *App) settings() Settings {
	s := Settings{
		Provider:   a.provider,
		Model:      core.ModelID(a.model),
		ListenAddr: a.serveAddr,
	}
	if a.cfg != nil {
		if s.ListenAddr == "" {
			s.ListenAddr = a.cfg.ListenAddr
		}
		if pc := a.cfg.GetProvider(s.Provider); pc != nil {
			s.BaseURL = pc.BaseURL
		}
	}
	if s.ListenAddr == "" {
		s.ListenAddr = config.DefaultListenAddr
	}
	return s
}

func (a *App) generator() (web.Generator, error) {
	gen, err := a.newGenerator(a.settings(), newLogTelemetry(a.logger))
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	return gen, nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}

// ExecuteContext runs the default app root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return defaultApp.ExecuteContext(ctx)
}
