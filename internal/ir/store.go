package ir

// Capacity is the fixed number of code slots in a Store. This mirrors
// the controller's RAM budget for learned signals; insertion of a 17th
// distinct name fails with ErrStoreFull.
const Capacity = 16

// Store is a bounded, insertion-ordered collection of codes keyed by
// name. Lookups are linear scans: at 16 entries an index would cost more
// than it saves.
//
// The store is the single source of truth for pulse-buffer lifetime.
// Upsert clones the incoming code, Get clones the outgoing one, and
// Remove clears the vacated slot, so no caller ever shares a buffer
// with stored state.
type Store struct {
	entries [Capacity]Code
	count   int
}

// NewStore returns an empty store. The controller constructs exactly one
// at startup and threads it through the dispatcher; there is no package
// level instance, which keeps tests isolated.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of stored codes.
func (s *Store) Len() int {
	return s.count
}

// find returns the slot index holding name, or -1. Exact, case-sensitive
// match.
func (s *Store) find(name string) int {
	for i := 0; i < s.count; i++ {
		if s.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// Upsert inserts the code or, if a code with the same name exists,
// replaces it entirely. The stored copy is a deep clone: the caller's
// pulse buffer stays the caller's, and a replaced entry's old buffer is
// dropped before the new fields land.
//
// A new name hitting a full store fails with ErrStoreFull and leaves the
// store untouched. Replacing an existing name always succeeds regardless
// of fullness.
func (s *Store) Upsert(c Code) error {
	if c.Name == "" {
		return ErrEmptyName
	}

	clone := c.Clone()

	if i := s.find(c.Name); i >= 0 {
		s.entries[i] = clone
		return nil
	}

	if s.count >= Capacity {
		return ErrStoreFull
	}

	s.entries[s.count] = clone
	s.count++
	return nil
}

// Get returns a copy of the named code. The copy's pulse buffer is
// independent of stored state, so callers may hold it across later
// mutations of the store.
func (s *Store) Get(name string) (Code, bool) {
	i := s.find(name)
	if i < 0 {
		return Code{}, false
	}
	return s.entries[i].Clone(), true
}

// Remove deletes the named code, shifting later entries down one slot so
// enumeration order stays stable with no gaps. The vacated trailing slot
// is zeroed so it cannot resurface a stale pulse buffer on a later
// insert.
func (s *Store) Remove(name string) error {
	i := s.find(name)
	if i < 0 {
		return ErrNotFound
	}

	copy(s.entries[i:s.count-1], s.entries[i+1:s.count])
	s.entries[s.count-1] = Code{}
	s.count--
	return nil
}

// Summaries returns the (name, type) of every stored code in insertion
// order.
func (s *Store) Summaries() []Summary {
	out := make([]Summary, 0, s.count)
	for i := 0; i < s.count; i++ {
		out = append(out, Summary{
			Name: s.entries[i].Name,
			Type: s.entries[i].TypeName(),
		})
	}
	return out
}
