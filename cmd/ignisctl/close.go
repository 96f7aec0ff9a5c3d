package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/newor0599/ignis/internal/dbus"
)

// closeCmd closes a notification by id.
var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a notification",
	Long: `Ask the running daemon to close a notification by id.

Unknown ids are silently ignored by the daemon.`,
	Args: cobra.ExactArgs(1),
	RunE: closeRun,
}

func closeRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid notification id %q: %w", args[0], err)
	}

	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	return client.CloseNotification(uint32(id))
}
