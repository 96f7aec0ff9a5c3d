package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newor0599/ignis/internal/core"
	"github.com/newor0599/ignis/internal/model"
	"github.com/newor0599/ignis/internal/output"
	"github.com/newor0599/ignis/internal/store"
)

var listOpts struct {
	format   string
	template string
	app      string
	urgency  string
	since    string
	sortBy   string
	order    string
	limit    int
}

// listCmd prints the persisted notification history.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notification history",
	Long: `List the notifications persisted by the daemon.

Reads the history file directly, so it works whether or not ignisd is
currently running.`,
	RunE: listRun,
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain", "Output format: plain, json, dmenu, ids")
	listCmd.Flags().StringVar(&listOpts.template, "template", "", "Custom Go template for plain/dmenu output")
	listCmd.Flags().StringVar(&listOpts.app, "app", "", "Only notifications from this app")
	listCmd.Flags().StringVarP(&listOpts.urgency, "urgency", "u", "", "Only this urgency: low, normal, critical")
	listCmd.Flags().StringVar(&listOpts.since, "since", "", "Only notifications newer than this (e.g. 2h, 7d, 1w)")
	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", "created", "Sort field: created, app, urgency")
	listCmd.Flags().StringVar(&listOpts.order, "order", "desc", "Sort order: asc, desc")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0, "Maximum number of results (0 = unlimited)")
}

func listRun(cmd *cobra.Command, args []string) error {
	historyPath, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("failed to resolve history path: %w", err)
	}

	persistence, err := store.NewJSONPersistence(historyPath, logger)
	if err != nil {
		return err
	}

	snap, err := persistence.Load()
	if err != nil {
		return err
	}

	notifications := make([]*model.Notification, 0, len(snap.Notifications))
	for i := range snap.Notifications {
		notifications = append(notifications, &snap.Notifications[i])
	}

	filter := core.FilterOptions{
		App:   listOpts.app,
		Limit: listOpts.limit,
	}
	if listOpts.urgency != "" {
		u, err := core.ParseUrgency(listOpts.urgency)
		if err != nil {
			return err
		}
		filter.Urgency = &u
	}
	if listOpts.since != "" {
		d, err := core.ParseDuration(listOpts.since)
		if err != nil {
			return err
		}
		filter.Since = d
	}

	core.Sort(notifications, core.SortOptions{
		Field: core.ParseSortField(listOpts.sortBy),
		Order: core.ParseSortOrder(listOpts.order),
	})
	notifications = core.Filter(notifications, filter)

	fmtOpts := output.DefaultFormatterOptions()
	fmtOpts.Template = listOpts.template

	formatter := output.NewFormatter(output.FormatType(listOpts.format), fmtOpts)
	return formatter.Format(os.Stdout, notifications)
}
