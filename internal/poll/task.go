// Package poll contains the synchronization core behind the periodic fetch
// tasks: per-resource request de-duplication, sequence-numbered staleness
// rejection, and rate-limited failure visibility. Timer cadence itself is
// owned by the consuming view (tea.Tick); this package decides what each
// tick and each response is allowed to do.
package poll

// Task tracks one recurring fetch for a single resource. It is created
// when a consuming view mounts and stopped when the view unmounts. All
// methods are called from the update loop, never concurrently.
type Task struct {
	resource string
	seq      uint64 // last issued request sequence
	applied  uint64 // highest sequence whose response was applied
	inFlight bool
	active   bool
}

// NewTask creates an active task for the named resource.
func NewTask(resource string) *Task {
	return &Task{resource: resource, active: true}
}

// Resource returns the resource identifier this task polls.
func (t *Task) Resource() string {
	return t.resource
}

// Begin claims the right to issue a request. It returns false while a
// request is already in flight (a slow network must not pile up requests)
// or after Stop. On success the returned sequence number tags the request.
func (t *Task) Begin() (seq uint64, ok bool) {
	if !t.active || t.inFlight {
		return 0, false
	}
	t.seq++
	t.inFlight = true
	return t.seq, true
}

// Apply reports whether the response tagged seq may be applied to state:
// only the highest sequence seen wins, so a late response to an earlier
// request never overwrites newer data. It also clears the in-flight mark
// for that request.
func (t *Task) Apply(seq uint64) bool {
	if seq == t.seq {
		t.inFlight = false
	}
	if !t.active || seq <= t.applied {
		return false
	}
	t.applied = seq
	return true
}

// Fail clears the in-flight mark for a failed request without touching
// the applied watermark; the next tick proceeds normally.
func (t *Task) Fail(seq uint64) {
	if seq == t.seq {
		t.inFlight = false
	}
}

// InFlight reports whether a request is currently outstanding.
func (t *Task) InFlight() bool {
	return t.inFlight
}

// Active reports whether the task still accepts ticks.
func (t *Task) Active() bool {
	return t.active
}

// Stop deactivates the task on view teardown. Later ticks issue nothing
// and responses still in flight are discarded.
func (t *Task) Stop() {
	t.active = false
	t.inFlight = false
}
