package style

// ID is a handle to an interned Style. The zero ID means "no style":
// text tagged with None renders with the document default.
type ID uint32

// None is the ID of the document default style.
const None ID = 0

// entry is an interned style with its reference count.
type entry struct {
	style Style
	hash  uint64
	refs  int
}

// Registry interns styles so that equal styles share one ID.
// Entries are reference counted and erased as soon as the last
// reference is released.
//
// Registry is not safe for concurrent use. A registry may be shared by
// several documents that live on the same goroutine.
type Registry struct {
	entries   map[ID]*entry
	byHash    map[uint64][]ID
	next      ID
	free      []ID
	onRelease []func(ID)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[ID]*entry),
		byHash:  make(map[uint64][]ID),
		next:    1,
	}
}

// Intern returns the ID of s, adding it if no equal style is registered.
// The returned ID carries one reference owned by the caller.
func (r *Registry) Intern(s Style) ID {
	h := s.hash()
	for _, id := range r.byHash[h] {
		if e := r.entries[id]; e.style.Equal(s) {
			e.refs++
			return id
		}
	}

	id := r.allocID()
	r.entries[id] = &entry{style: s, hash: h, refs: 1}
	r.byHash[h] = append(r.byHash[h], id)
	return id
}

// Retain adds a reference to id. Retaining None or an unknown ID is a no-op.
func (r *Registry) Retain(id ID) {
	if e, ok := r.entries[id]; ok {
		e.refs++
	}
}

// Release drops a reference to id and erases the style when none remain.
// Releasing None or an unknown ID is a no-op.
func (r *Registry) Release(id ID) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}

	delete(r.entries, id)
	ids := r.byHash[e.hash]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.byHash, e.hash)
	} else {
		r.byHash[e.hash] = ids
	}
	r.free = append(r.free, id)

	for _, fn := range r.onRelease {
		fn(id)
	}
}

// Lookup returns the style for id. It reports false for None and for
// IDs that were released.
func (r *Registry) Lookup(id ID) (Style, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Style{}, false
	}
	return e.style, true
}

// RefCount returns the number of live references to id.
func (r *Registry) RefCount(id ID) int {
	if e, ok := r.entries[id]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of interned styles.
func (r *Registry) Len() int {
	return len(r.entries)
}

// OnRelease registers fn to be called after a style is erased.
func (r *Registry) OnRelease(fn func(ID)) {
	r.onRelease = append(r.onRelease, fn)
}

func (r *Registry) allocID() ID {
	if n := len(r.free); n > 0 {
		id := r.free[n-1]
		r.free = r.free[:n-1]
		return id
	}
	id := r.next
	r.next++
	return id
}
