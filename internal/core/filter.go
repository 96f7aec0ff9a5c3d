// Package core provides filtering and sorting over notification history.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/newor0599/ignis/internal/model"
)

// FilterOptions specifies criteria for narrowing a notification list.
type FilterOptions struct {
	Since     time.Duration // Keep notifications newer than now-since (0 = all)
	App       string        // Exact match on app name
	Urgency   *int          // Filter by urgency level (nil = any)
	PopupOnly bool          // Keep only notifications currently shown as popups
	Limit     int           // Maximum results (0 = unlimited)
}

// Filter returns the notifications matching opts, preserving order.
func Filter(notifications []*model.Notification, opts FilterOptions) []*model.Notification {
	now := time.Now()
	result := make([]*model.Notification, 0, len(notifications))

	for _, n := range notifications {
		if opts.Since > 0 {
			cutoff := now.Add(-opts.Since)
			if n.CreatedAtTime().Before(cutoff) {
				continue
			}
		}

		if opts.App != "" && n.AppName != opts.App {
			continue
		}

		if opts.Urgency != nil && n.Urgency != *opts.Urgency {
			continue
		}

		if opts.PopupOnly && !n.Popup {
			continue
		}

		result = append(result, n)
	}

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// ParseDuration parses a duration string with extended formats.
// Supports standard Go durations plus day and week suffixes: 48h, 7d, 1w.
// "0" and "" mean no time filter.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if s == "0" || s == "" {
		return 0, nil
	}

	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseUrgency parses an urgency string to its integer value.
// Accepts: low, normal, critical, 0, 1, 2.
func ParseUrgency(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "0":
		return model.UrgencyLow, nil
	case "normal", "1":
		return model.UrgencyNormal, nil
	case "critical", "2":
		return model.UrgencyCritical, nil
	default:
		return 0, fmt.Errorf("invalid urgency: %s (use low, normal, or critical)", s)
	}
}
