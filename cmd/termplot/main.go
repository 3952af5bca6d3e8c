// main.go bootstraps termplot: it builds the root Cobra command and executes it with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/termplot/config"
)

const envPrefix = "TERMPLOT"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

// globalOptions are shared by every subcommand
type globalOptions struct {
	logLevel string
	log      logr.Logger
}

func newRootCommand() *cobra.Command {
	global := &globalOptions{logLevel: "warn", log: logr.Discard()}
	opts := &plotOptions{colorMode: "auto", depth: "auto"}

	cmd := &cobra.Command{
		Use:   "termplot [FILE|-]",
		Short: "Draw plots as text for terminals and HTML",
		Long: "termplot reads a JSON or YAML plot document and draws it as a text chart.\n" +
			"A document is either an array of numbers or an object of plot settings.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyViper(cmd); err != nil {
				return err
			}
			l, err := buildLogger(global.logLevel)
			if err != nil {
				return err
			}
			global.log = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, args, opts, global)
		},
	}
	cmd.PersistentFlags().StringVar(&global.logLevel, "log-level", global.logLevel, "Log level for diagnostics on stderr (debug, info, warn, error)")
	opts.bindFlags(cmd.Flags())

	cmd.AddCommand(newMergeCommand(global))
	cmd.Example = `  # Plot a series
  echo '[1, 5, 2, 8, 3]' | termplot --height 10

  # Colored plot from a document, previewed full screen
  termplot plot.yaml --color fg --preview

  # Two renderings side by side
  termplot merge a.txt b.txt --margin 4`
	return cmd
}

// applyViper overlays TERMPLOT_* environment variables and the optional
// TERMPLOT_CONFIG file onto every flag the user did not set
func applyViper(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()}
	for _, fs := range flagSets {
		if err := v.BindPFlags(fs); err != nil {
			return err
		}
	}
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	var setErr error
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed || !v.IsSet(f.Name) || setErr != nil {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if val != "" && val != f.Value.String() {
				if err := f.Value.Set(val); err != nil {
					setErr = fmt.Errorf("%s_%s: %w", envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err)
				}
			}
		})
	}
	return setErr
}

func buildLogger(level string) (logr.Logger, error) {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning", "":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return logr.Logger{}, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	z, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(z), nil
}

func handleError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var unknown *config.UnknownKeyError
	var colorErr *config.ColorError
	switch {
	case errors.As(err, &unknown):
		message = fmt.Sprintf("%s\nHint: keys are snake_case, for example plot_width or 1d_data.", err)
	case errors.As(err, &colorErr):
		message = fmt.Sprintf("%s\nHint: known colors are %s.", err, strings.Join(colorNames(), ", "))
	}
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), message)
}
