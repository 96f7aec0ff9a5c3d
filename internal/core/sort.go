package core

import (
	"sort"
	"strings"

	"github.com/newor0599/ignis/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByCreated SortField = "created"
	SortByApp     SortField = "app"
	SortByUrgency SortField = "urgency"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns the default sort (newest first).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByCreated,
		Order: SortDesc,
	}
}

// Sort sorts notifications in place based on the provided options.
// The sort is stable, so ties keep their original order.
func Sort(notifications []*model.Notification, opts SortOptions) {
	if len(notifications) == 0 {
		return
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		var less, greater bool

		switch opts.Field {
		case SortByApp:
			a := strings.ToLower(notifications[i].AppName)
			b := strings.ToLower(notifications[j].AppName)
			less, greater = a < b, a > b
		case SortByUrgency:
			less = notifications[i].Urgency < notifications[j].Urgency
			greater = notifications[i].Urgency > notifications[j].Urgency
		default:
			less = notifications[i].CreatedAt < notifications[j].CreatedAt
			greater = notifications[i].CreatedAt > notifications[j].CreatedAt
		}

		if opts.Order == SortDesc {
			return greater
		}
		return less
	})
}

// ParseSortField parses a sort field string, defaulting to created time.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "app", "appname", "a":
		return SortByApp
	case "urgency", "u":
		return SortByUrgency
	default:
		return SortByCreated
	}
}

// ParseSortOrder parses a sort order string, defaulting to descending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc
	default:
		return SortDesc
	}
}
