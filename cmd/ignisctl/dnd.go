package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newor0599/ignis/internal/daemon"
	"github.com/newor0599/ignis/internal/options"
)

// dndCmd represents the dnd command group.
var dndCmd = &cobra.Command{
	Use:   "dnd",
	Short: "Manage Do Not Disturb mode",
	Long: `Manage Do Not Disturb (DnD) mode for ignisd.

When DnD is enabled, new notifications are created without the popup
flag: they are persisted to history but never shown as popups.
Already-created notifications are unaffected.

A running daemon picks up changes through its options-file watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dndStatusRun(cmd, args)
	},
}

var dndOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable Do Not Disturb mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dndSet(true)
	},
}

var dndOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable Do Not Disturb mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dndSet(false)
	},
}

var dndToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle Do Not Disturb mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := openOptions()
		if err != nil {
			return err
		}
		enabled, err := opts.GetBool(daemon.OptionDND)
		if err != nil {
			return err
		}
		if err := opts.Set(daemon.OptionDND, !enabled); err != nil {
			return err
		}
		printDnD(!enabled)
		return nil
	},
}

var dndStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Do Not Disturb status",
	RunE:  dndStatusRun,
}

func init() {
	dndCmd.AddCommand(dndOnCmd)
	dndCmd.AddCommand(dndOffCmd)
	dndCmd.AddCommand(dndToggleCmd)
	dndCmd.AddCommand(dndStatusCmd)
}

// openOptions opens the shared options file and makes sure the dnd
// option exists, so dnd commands work before the daemon's first run.
func openOptions() (*options.Service, error) {
	path, err := cfg.OptionsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve options path: %w", err)
	}
	opts, err := options.NewService(path, logger)
	if err != nil {
		return nil, err
	}
	if err := opts.Create(daemon.OptionDND, false, true); err != nil {
		return nil, err
	}
	return opts, nil
}

func dndSet(enabled bool) error {
	opts, err := openOptions()
	if err != nil {
		return err
	}
	if err := opts.Set(daemon.OptionDND, enabled); err != nil {
		return err
	}
	printDnD(enabled)
	return nil
}

func dndStatusRun(cmd *cobra.Command, args []string) error {
	opts, err := openOptions()
	if err != nil {
		return err
	}
	enabled, err := opts.GetBool(daemon.OptionDND)
	if err != nil {
		return err
	}
	printDnD(enabled)
	return nil
}

func printDnD(enabled bool) {
	if enabled {
		fmt.Println("Do Not Disturb: enabled")
	} else {
		fmt.Println("Do Not Disturb: disabled")
	}
}
