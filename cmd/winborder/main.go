package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winborder/internal/config"
	"github.com/1broseidon/winborder/internal/logging"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// resolvedConfigPath returns --config, $WINBORDER_CONFIG or the default path.
func (o *rootOptions) resolvedConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultConfigPath()
}

func (o *rootOptions) load() (*config.LoadResult, error) {
	path, err := o.resolvedConfigPath()
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(path)
}

// logger builds the process logger. An explicit --log-level wins over the
// config's log_level.
func (o *rootOptions) logger(w io.Writer, cfgLevel string) (*slog.Logger, *slog.LevelVar, error) {
	level := cfgLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	return logging.New(w, logging.Options{
		Level:  level,
		Format: logging.Format(o.logFormat),
	})
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "winborder",
		Short: "Draw colored borders around X11 windows",
		Long: `winborder draws a colored, optionally animated border around each
top-level window. The daemon follows window moves, focus changes and
minimize/restore; the other commands talk to it over a unix socket.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: $WINBORDER_CONFIG or ~/.config/winborder/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log_level (debug, info, warning, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", string(logging.FormatAuto), "log format (auto, text, logfmt, json)")

	root.AddCommand(
		newDaemonCmd(opts),
		newStatusCmd(),
		newListCmd(),
		newReloadCmd(),
		newToggleCmd(),
		newQuitCmd(),
		newConfigCmd(opts),
		newColorCmd(opts),
		newMCPCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
