package textedit

import "slices"

// event is a list of listeners called in subscription order.
type event[T any] struct {
	subs []subscription[T]
	next uint64
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// subscribe adds fn and returns a function that removes it.
func (e *event[T]) subscribe(fn func(T)) func() {
	e.next++
	id := e.next
	e.subs = append(e.subs, subscription[T]{id: id, fn: fn})
	return func() {
		e.subs = slices.DeleteFunc(e.subs, func(s subscription[T]) bool { return s.id == id })
	}
}

// emit calls every listener with v. Listeners added or removed during
// emit take effect on the next call.
func (e *event[T]) emit(v T) {
	for _, s := range slices.Clone(e.subs) {
		s.fn(v)
	}
}
