package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newor0599/ignis/internal/dbus"
)

// infoCmd queries the running daemon's server information.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show notification server information",
	Long:  `Query the running notification daemon for its server information and capabilities.`,
	RunE:  infoRun,
}

func infoRun(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	info, err := client.ServerInformation()
	if err != nil {
		return err
	}

	caps, err := client.Capabilities()
	if err != nil {
		return err
	}

	fmt.Printf("Name:         %s\n", info.Name)
	fmt.Printf("Vendor:       %s\n", info.Vendor)
	fmt.Printf("Version:      %s\n", info.Version)
	fmt.Printf("Spec version: %s\n", info.SpecVersion)
	fmt.Printf("Capabilities: %s\n", strings.Join(caps, ", "))
	return nil
}
