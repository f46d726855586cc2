package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╻ ╻┏━╸┏━╸╺┳╸
  ┃╻┃┣╸ ┣╸  ┃
  ┗┻┛┗━╸╹   ╹
`

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
}

func main() {
	errors.AutoColors(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Incremental UI reconciliation engine",
		Long: `weft renders virtual element trees into a host tree one unit of work
at a time, yielding between units and committing all host mutations at
once.

The CLI mounts the bundled demo applications:

  • render prints the committed HTML of a demo
  • serve streams a live demo to browsers over WebSocket
  • snapshots reads the commit snapshots recorded by render and serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: weft.json or weft.yaml in the project root)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		snapshotsCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// load reads the configuration and applies the global flag overrides.
func (f *globalFlags) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger for cfg writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

// printError prints err, formatted in full when it carries a code.
func printError(w io.Writer, err error) {
	var we *errors.WeftError
	if stderrors.As(err, &we) {
		fmt.Fprintln(w, we.Format())
		return
	}
	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
}

// printBanner prints the weft banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
