package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winborder/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the config file",
	}
	cmd.AddCommand(
		newConfigPathCmd(opts),
		newConfigValidateCmd(opts),
		newConfigPrintCmd(opts),
		newConfigExplainCmd(opts),
	)
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	var fromDaemon bool
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			if fromDaemon {
				path, err = dialDaemon().ConfigPath()
			} else {
				path, err = opts.resolvedConfigPath()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromDaemon, "daemon", false, "ask the running daemon which file it loaded")
	return cmd
}

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and its includes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range res.Config.Warnings {
				fmt.Fprintln(out, warnStyle.Render("warning:"), w)
			}
			fmt.Fprintln(out, "config:", okStyle.Render("ok"))
			return nil
		},
	}
}

func newConfigPrintCmd(opts *rootOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				res, err := opts.load()
				if err != nil {
					return err
				}
				cfg = res.Config
			}
			data, err := yaml.Marshal(cfg.Document())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print built-in defaults (no files)")
	return cmd
}

func newConfigExplainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <yaml.path>",
		Short: "Show a setting's effective value and where it came from",
		Example: `  winborder config explain global.border_width
  winborder config explain window_rules.0.active_color`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.load()
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path: %s\n", args[0])
			fmt.Fprintf(out, "source: %s\n", formatSource(src))
			fmt.Fprintf(out, "value:\n%s", string(data))
			return nil
		},
	}
}
