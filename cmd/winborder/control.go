package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/ipc"
)

// daemonClient is the IPC surface the control commands use.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListBorders() ([]border.Snapshot, error)
	Reload() (*ipc.ReloadData, error)
	Toggle() (bool, error)
	ConfigPath() (string, error)
	Quit() error
}

var dialDaemon = func() daemonClient { return ipc.NewClient() }

func newStatusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := dialDaemon().GetStatus()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, st)
			}
			renderStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the borders the daemon is drawing",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := dialDaemon().ListBorders()
			if err != nil {
				return err
			}
			if asJSON {
				if snaps == nil {
					snaps = []border.Snapshot{}
				}
				return writeJSON(cmd, snaps)
			}
			renderBorders(cmd.OutOrStdout(), snaps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the daemon's config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := dialDaemon().Reload()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s kept %d, created %d, destroyed %d\n",
				okStyle.Render("reloaded:"), res.Kept, res.Created, res.Destroyed)
			for _, w := range res.Warnings {
				fmt.Fprintln(out, warnStyle.Render("warning:"), w)
			}
			return nil
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Turn all borders off or back on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := dialDaemon().Toggle()
			if err != nil {
				return err
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "borders", okStyle.Render("on"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "borders", warnStyle.Render("off"))
			}
			return nil
		},
	}
}

func newQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Stop the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dialDaemon().Quit(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "daemon stopping")
			return nil
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
