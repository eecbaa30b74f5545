package workflow

import (
	"sort"
	"time"
)

// SortKey is what ordering needs from a request.
type SortKey struct {
	ID          string
	RequestedAt time.Time
	ReviewedAt  *time.Time
}

// ReviewedOnly reports whether a status filter selects reviewed requests
// exclusively, in which case lists are ordered by review time.
func ReviewedOnly(statuses []Status) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, s := range statuses {
		if !s.Terminal() {
			return false
		}
	}
	return true
}

// SortNewestFirst orders items by requestedAt descending, or by reviewedAt
// when byReviewed is set. Unreviewed items sort after reviewed ones in that
// mode. Ties break on id descending.
func SortNewestFirst[T any](items []T, byReviewed bool, key func(T) SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		ta, tb := a.RequestedAt, b.RequestedAt
		if byReviewed {
			switch {
			case a.ReviewedAt == nil && b.ReviewedAt == nil:
			case a.ReviewedAt == nil:
				return false
			case b.ReviewedAt == nil:
				return true
			default:
				ta, tb = *a.ReviewedAt, *b.ReviewedAt
			}
		}
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.ID > b.ID
	})
}
