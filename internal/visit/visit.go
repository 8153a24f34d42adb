// Package visit provides the Visit model, the append-only visit history,
// and the filter/sort stage that orders visits by recency.
package visit

import (
	"errors"
	"fmt"
	"time"

	"github.com/graaaaa/vrcvisits/internal/instance"
)

// Sentinel errors for the visit package.
var (
	// ErrNoVisits is returned when filtering leaves nothing to show.
	ErrNoVisits = errors.New("no visits found")

	// ErrIndexOutOfRange is returned when a selected index exceeds the result.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// TimeLayout is the timestamp layout written by the VRChat client.
const TimeLayout = "2006.01.02 15:04:05"

// Visit is one observed connection to an instance.
type Visit struct {
	Instance  instance.Instance
	Timestamp time.Time
}

// String returns a human-readable representation of the visit.
func (v Visit) String() string {
	return fmt.Sprintf("%s %s (%s)",
		v.Timestamp.Format(TimeLayout),
		v.Instance.Raw(),
		v.Instance.Permission)
}

// History accumulates visits in scan order. It only grows; filtering
// returns new slices and leaves the history untouched.
type History struct {
	visits []Visit
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Add appends a visit. Visits without a world id are ignored.
func (h *History) Add(v Visit) {
	if v.Instance.WorldID == "" {
		return
	}
	h.visits = append(h.visits, v)
}

// Len returns the number of visits recorded.
func (h *History) Len() int {
	return len(h.visits)
}

// Visits returns a copy of the recorded visits in scan order.
func (h *History) Visits() []Visit {
	return append([]Visit(nil), h.visits...)
}
