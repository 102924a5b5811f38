package selector

// Selector derives a comparable value and dispatches it when it changes.
// It is not safe for concurrent use; drive it from one scheduler context.
type Selector[S comparable] struct {
	compute  func() S
	dispatch func(S)
	equal    func(a, b S) bool
	last     S
}

// Option configures a Selector.
type Option[S comparable] func(*Selector[S])

// WithInitial sets the baseline the first Signal is compared with.
// Defaults to the zero value of S.
func WithInitial[S comparable](s S) Option[S] {
	return func(sel *Selector[S]) {
		sel.last = s
	}
}

// WithEqual replaces the == comparison.
func WithEqual[S comparable](eq func(a, b S) bool) Option[S] {
	return func(sel *Selector[S]) {
		if eq != nil {
			sel.equal = eq
		}
	}
}

// New creates a selector. compute and dispatch must not be nil.
func New[S comparable](compute func() S, dispatch func(S), opts ...Option[S]) *Selector[S] {
	if compute == nil || dispatch == nil {
		panic("selector: compute and dispatch are required")
	}
	sel := &Selector[S]{
		compute:  compute,
		dispatch: dispatch,
		equal:    func(a, b S) bool { return a == b },
	}
	for _, opt := range opts {
		opt(sel)
	}
	return sel
}

// Signal recomputes the value and dispatches it if it differs from the last
// dispatched one. It reports whether a dispatch happened.
func (s *Selector[S]) Signal() bool {
	next := s.compute()
	if s.equal(s.last, next) {
		return false
	}
	s.last = next
	s.dispatch(next)
	return true
}

// Observe recaptures the baseline from compute without dispatching.
func (s *Selector[S]) Observe() {
	s.last = s.compute()
}

// Rebase replaces the baseline with fn(baseline) without dispatching.
// Unlike Observe it leaves the rest of the baseline alone, so a change that
// happened but has not been signalled yet is still detected by the next Signal.
func (s *Selector[S]) Rebase(fn func(last S) S) {
	if fn != nil {
		s.last = fn(s.last)
	}
}

// Last returns the value captured at the last dispatch, Observe or Rebase.
func (s *Selector[S]) Last() S {
	return s.last
}
