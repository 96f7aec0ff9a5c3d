package main

import (
	"fmt"
	"strings"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/newor0599/ignis/internal/core"
	"github.com/newor0599/ignis/internal/dbus"
)

var sendOpts struct {
	appName    string
	icon       string
	urgency    string
	timeout    int32
	replacesID uint32
	actions    []string
}

// sendCmd sends a notification through the daemon.
var sendCmd = &cobra.Command{
	Use:   "send <summary> [body]",
	Short: "Send a notification",
	Long: `Send a notification to the running daemon over D-Bus.

Actions are given as key=label pairs and may be repeated:

  ignisctl send -a default=Open -a dismiss=Dismiss "Build finished"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: sendRun,
}

func init() {
	sendCmd.Flags().StringVar(&sendOpts.appName, "app-name", "ignisctl", "Application name")
	sendCmd.Flags().StringVar(&sendOpts.icon, "icon", "", "Icon name or path")
	sendCmd.Flags().StringVarP(&sendOpts.urgency, "urgency", "u", "normal", "Urgency: low, normal, critical")
	sendCmd.Flags().Int32VarP(&sendOpts.timeout, "timeout", "t", -1, "Timeout in milliseconds (-1 = server default, 0 = never)")
	sendCmd.Flags().Uint32VarP(&sendOpts.replacesID, "replaces-id", "r", 0, "Id of the notification to replace")
	sendCmd.Flags().StringArrayVarP(&sendOpts.actions, "action", "a", nil, "Action as key=label (repeatable)")
}

func sendRun(cmd *cobra.Command, args []string) error {
	summary := args[0]
	body := ""
	if len(args) == 2 {
		body = args[1]
	}

	urgency, err := core.ParseUrgency(sendOpts.urgency)
	if err != nil {
		return err
	}

	var actions []string
	for _, a := range sendOpts.actions {
		key, label, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid action %q: expected key=label", a)
		}
		actions = append(actions, key, label)
	}

	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	id, err := client.Notify(&dbus.NotifyRequest{
		AppName:    sendOpts.appName,
		ReplacesID: sendOpts.replacesID,
		AppIcon:    sendOpts.icon,
		Summary:    summary,
		Body:       body,
		Actions:    actions,
		Hints: map[string]godbus.Variant{
			"urgency": godbus.MakeVariant(byte(urgency)),
		},
		ExpireTimeout: sendOpts.timeout,
	})
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
