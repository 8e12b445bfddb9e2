package policy

import "github.com/fond-planning/boand/internal/task"

type setEntry struct {
	state   task.State
	deleted bool
}

// pset is a persistent set of task.State, built on pmap with tombstones so
// that removing an element (pending loses a state once it is assigned an
// action) is as cheap as adding one: both are a single overlay layer.
type pset struct {
	m *pmap[setEntry]
}

func newPSet() pset { return pset{} }

func (s pset) with(st task.State) pset {
	return pset{m: s.m.with(st.Key(), setEntry{state: st})}
}

func (s pset) without(st task.State) pset {
	return pset{m: s.m.with(st.Key(), setEntry{state: st, deleted: true})}
}

func (s pset) has(st task.State) bool {
	e, ok := s.m.get(st.Key())
	return ok && !e.deleted
}

// states returns the live (non-deleted) members of the set. Order is
// unspecified.
func (s pset) states() []task.State {
	out := make([]task.State, 0, s.m.len())
	s.m.each(func(_ string, e setEntry) bool {
		if !e.deleted {
			out = append(out, e.state)
		}
		return true
	})
	return out
}

func (s pset) len() int {
	return len(s.states())
}
