package feed

import "context"

// Trigger decides when the consumer has run far enough into the loaded
// list to warrant the next page. It is the only path by which page numbers
// advance past 1.
//
// The gates mirror the intersection-observer conditions of a scrolling
// feed: proximity to the end, more content available, nothing in flight,
// and no client-side search active. Once HasMore is false for a pair the
// trigger stays silent until the pair changes or a refresh resets it.
type Trigger struct {
	sync      *Synchronizer
	threshold int
}

// NewTrigger wires a trigger to the synchronizer. threshold is how many
// items from the end of the loaded list counts as "near the end".
func NewTrigger(sync *Synchronizer, threshold int) *Trigger {
	if threshold < 0 {
		threshold = 0
	}
	return &Trigger{sync: sync, threshold: threshold}
}

// ShouldFire reports whether a consumer positioned at index position
// (0-based into the loaded list) passes every gate.
func (t *Trigger) ShouldFire(position int) bool {
	snap := t.sync.Snapshot()
	if snap.SearchQuery != "" {
		return false
	}
	if !snap.HasMore {
		return false
	}
	if snap.Loading() {
		return false
	}
	if len(snap.Items) == 0 {
		return false
	}
	remaining := len(snap.Items) - 1 - position
	return remaining <= t.threshold
}

// Notify reports the consumer's position and, when every gate passes,
// advances the page counter and issues the load. Returns whether it fired.
// The load runs synchronously; callers invoke Notify from the same
// background context they run LoadPage in.
func (t *Trigger) Notify(ctx context.Context, position int) bool {
	if !t.ShouldFire(position) {
		return false
	}
	t.sync.NextPage(ctx)
	return true
}
