package state

// Deferrer schedules fn to run once the current event has been handled and
// the view has had a chance to render.
type Deferrer func(fn func())

// Queue collects deferred work until its owner drains it.
type Queue struct {
	pending []func()
}

// Defer appends fn to the queue.
func (q *Queue) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Pending reports whether deferred work is waiting.
func (q *Queue) Pending() bool {
	return len(q.pending) > 0
}

// Drain runs the work queued so far. Work deferred while draining waits for
// the next drain.
func (q *Queue) Drain() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
