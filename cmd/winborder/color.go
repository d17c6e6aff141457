package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/config"
)

// accentFor returns the accent source the daemon would use with cfg.
var accentFor = func(cfg *config.Config, logger *slog.Logger) colors.AccentSource {
	return colors.NewGSettingsAccent(cfg.AccentFallbackRGB(), logger)
}

func newColorCmd(opts *rootOptions) *cobra.Command {
	var inactive bool
	cmd := &cobra.Command{
		Use:   "color <spec>",
		Short: "Resolve a color setting to the paint the daemon would draw",
		Example: `  winborder color accent
  winborder color '#89b4fa'
  winborder color 'rgb(137, 180, 250)' --inactive
  winborder color '{colors: [accent, "#000"], direction: 45deg}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := colors.ParseSpec(strings.Join(args, " "))
			if err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			if res, err := opts.load(); err == nil {
				cfg = res.Config
			}
			logger, _, err := opts.logger(cmd.ErrOrStderr(), "warning")
			if err != nil {
				logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			}

			resolver := colors.NewResolver(accentFor(cfg, logger), logger)
			renderPaint(cmd.OutOrStdout(), resolver.Resolve(spec, !inactive))
			return nil
		},
	}
	cmd.Flags().BoolVar(&inactive, "inactive", false, "resolve for an unfocused window")
	return cmd
}
