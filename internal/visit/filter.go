package visit

import (
	"fmt"
	"slices"
	"time"
)

// Filter selects which visits survive Apply. The zero value keeps everything.
type Filter struct {
	// ExcludePublic drops public, publicly named and unrecognized instances.
	ExcludePublic bool
	// MinAge, when positive, keeps only visits strictly newer than now-MinAge.
	MinAge time.Duration
	// ExcludeWorldIDs drops visits to these worlds.
	ExcludeWorldIDs []string
}

// Sorted is a filtered history ordered from most to least recent.
type Sorted []Visit

// At returns the visit at index i.
func (s Sorted) At(i int) (Visit, error) {
	if i < 0 || i >= len(s) {
		return Visit{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(s))
	}
	return s[i], nil
}

// Apply filters visits and orders the survivors by timestamp, newest first.
// Visits with equal timestamps keep their input order. The input slice is
// not modified.
func Apply(visits []Visit, f Filter, now time.Time) Sorted {
	excluded := make(map[string]struct{}, len(f.ExcludeWorldIDs))
	for _, id := range f.ExcludeWorldIDs {
		excluded[id] = struct{}{}
	}

	var cutoff time.Time
	if f.MinAge > 0 {
		cutoff = now.Add(-f.MinAge)
	}

	out := make(Sorted, 0, len(visits))
	for _, v := range visits {
		if f.ExcludePublic && v.Instance.Permission.OpenToAnyone() {
			continue
		}
		if f.MinAge > 0 && !v.Timestamp.After(cutoff) {
			continue
		}
		if _, ok := excluded[v.Instance.WorldID]; ok {
			continue
		}
		out = append(out, v)
	}

	slices.SortStableFunc(out, func(a, b Visit) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
