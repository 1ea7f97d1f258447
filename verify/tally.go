// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verify

import (
	"sync"

	"github.com/siemens/mxsift/types"
)

// Tally counts checked records per status. A typical use case for a Tally is
// to consume verdicts from an event stream (channel or router callback)
// sending updates as records pass through the pipeline, while a renderer
// concurrently snapshots the counts for display.
type Tally struct {
	mu     sync.Mutex
	counts map[types.Status]int
}

// NewTally returns a new and properly initialized Tally.
func NewTally() *Tally {
	return &Tally{
		counts: map[types.Status]int{},
	}
}

// Update the tally with another checked record.
func (t *Tally) Update(verdict types.CheckedRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[verdict.Status]++
}

// Count returns the number of records tallied so far for the given status.
func (t *Tally) Count(status types.Status) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[status]
}

// Total returns the number of records tallied so far across all statuses.
func (t *Tally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, count := range t.counts {
		total += count
	}
	return total
}

// Snapshot returns a copy of the per-status counts, safe to read while the
// tally keeps getting updated.
func (t *Tally) Snapshot() map[types.Status]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	counts := make(map[types.Status]int, len(t.counts))
	for status, count := range t.counts {
		counts[status] = count
	}
	return counts
}
