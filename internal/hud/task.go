package hud

// Generation identifies one scheduled task or in-flight request. All state
// transitions happen on the single UI loop, so cancellation is expressed as
// generation invalidation: a timer or fetch result stamped with an old
// generation is simply ignored when it arrives.
type Generation uint64

// TaskSeq hands out generation stamps for cancellable scheduled work.
// The zero value is ready to use; Generation 0 is never live.
type TaskSeq struct {
	cur    Generation
	active bool
}

// Next cancels any pending generation and returns a fresh live one.
func (s *TaskSeq) Next() Generation {
	s.cur++
	s.active = true
	return s.cur
}

// Cancel invalidates the current generation. Cancelling an already-cancelled
// sequence is a no-op.
func (s *TaskSeq) Cancel() {
	s.active = false
}

// Live reports whether g is the current, uncancelled generation.
func (s *TaskSeq) Live(g Generation) bool {
	return s.active && g == s.cur
}
