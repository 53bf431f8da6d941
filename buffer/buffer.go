package buffer

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/gogpu/textedit/style"
)

// ErrOutOfRange is returned when an offset lies outside the buffer.
var ErrOutOfRange = errors.New("buffer: offset out of range")

// Tracker receives reference count changes for the tags stored in a
// buffer. *style.Registry implements Tracker.
type Tracker interface {
	Retain(style.ID)
	Release(style.ID)
}

// Run is a maximal span of bytes sharing one tag.
type Run struct {
	Start, End int
	Tag        style.ID
}

// Len returns the number of bytes in the run.
func (r Run) Len() int { return r.End - r.Start }

type span struct {
	n   int
	tag style.ID
}

// Buffer is a byte buffer whose contents are partitioned into tagged runs.
//
// Runs never overlap, never leave gaps, are never empty, and two adjacent
// runs never carry the same tag. Every run holds one reference to its tag
// in the Tracker, so a style stays alive exactly as long as some text uses
// it.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data    []byte
	spans   []span
	tracker Tracker
}

// New creates an empty buffer. tracker may be nil.
func New(tracker Tracker) *Buffer {
	return &Buffer{tracker: tracker}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// String returns the buffer contents.
func (b *Buffer) String() string { return string(b.data) }

// Slice returns the bytes in [start, end) as a string. The range is
// clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clampRange(start, end)
	return string(b.data[start:end])
}

// Runs iterates over the tagged runs in order.
func (b *Buffer) Runs() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		pos := 0
		for _, s := range b.spans {
			if !yield(Run{Start: pos, End: pos + s.n, Tag: s.tag}) {
				return
			}
			pos += s.n
		}
	}
}

// RunCount returns the number of runs.
func (b *Buffer) RunCount() int { return len(b.spans) }

// TagAt returns the tag of the byte at offset. Offsets at or past the end
// return the tag of the last byte; an empty buffer returns style.None.
func (b *Buffer) TagAt(offset int) style.ID {
	if len(b.spans) == 0 {
		return style.None
	}
	pos := 0
	for _, s := range b.spans {
		if offset < pos+s.n {
			return s.tag
		}
		pos += s.n
	}
	return b.spans[len(b.spans)-1].tag
}

// InsertionTag returns the tag that text inserted at offset would inherit:
// the tag of the preceding byte, or of the following byte at offset zero.
func (b *Buffer) InsertionTag(offset int) style.ID {
	if offset > 0 {
		return b.TagAt(offset - 1)
	}
	return b.TagAt(0)
}

// Insert inserts s at offset. A tag of style.None makes the new text
// inherit the tag at the insertion point.
func (b *Buffer) Insert(offset int, s string, tag style.ID) error {
	if offset < 0 || offset > len(b.data) {
		return fmt.Errorf("%w: insert at %d, length %d", ErrOutOfRange, offset, len(b.data))
	}
	if s == "" {
		return nil
	}
	if tag == style.None {
		tag = b.InsertionTag(offset)
	}

	before := b.tagCounts()
	b.data = slices.Insert(b.data, offset, []byte(s)...)

	i, pos := b.locate(offset)
	n := len(s)
	switch {
	case i == len(b.spans):
		b.spans = append(b.spans, span{n: n, tag: tag})
	case b.spans[i].tag == tag:
		b.spans[i].n += n
	case pos == offset:
		b.spans = slices.Insert(b.spans, i, span{n: n, tag: tag})
	default:
		head := span{n: offset - pos, tag: b.spans[i].tag}
		tail := span{n: b.spans[i].n - head.n, tag: b.spans[i].tag}
		b.spans = slices.Replace(b.spans, i, i+1, head, span{n: n, tag: tag}, tail)
	}
	b.normalize(before)
	return nil
}

// Delete removes the bytes in [start, end).
func (b *Buffer) Delete(start, end int) error {
	if start < 0 || end > len(b.data) || start > end {
		return fmt.Errorf("%w: delete [%d, %d), length %d", ErrOutOfRange, start, end, len(b.data))
	}
	if start == end {
		return nil
	}

	before := b.tagCounts()
	b.data = slices.Delete(b.data, start, end)

	pos := 0
	for i := range b.spans {
		s0, s1 := pos, pos+b.spans[i].n
		pos = s1
		lo, hi := max(s0, start), min(s1, end)
		if lo < hi {
			b.spans[i].n -= hi - lo
		}
	}
	b.normalize(before)
	return nil
}

// SetTag retags the bytes in [start, end).
func (b *Buffer) SetTag(start, end int, tag style.ID) error {
	if start < 0 || end > len(b.data) || start > end {
		return fmt.Errorf("%w: retag [%d, %d), length %d", ErrOutOfRange, start, end, len(b.data))
	}
	if start == end {
		return nil
	}

	before := b.tagCounts()
	b.split(start)
	b.split(end)
	pos := 0
	for i := range b.spans {
		if pos >= start && pos < end {
			b.spans[i].tag = tag
		}
		pos += b.spans[i].n
	}
	b.normalize(before)
	return nil
}

// Reset replaces the whole buffer with s tagged with tag.
func (b *Buffer) Reset(s string, tag style.ID) {
	before := b.tagCounts()
	b.data = append(b.data[:0], s...)
	b.spans = b.spans[:0]
	if s != "" {
		b.spans = append(b.spans, span{n: len(s), tag: tag})
	}
	b.normalize(before)
}

// locate returns the index of the run containing offset and the run's
// start. An offset at the end of the buffer maps to the last run, or to
// len(spans) when the buffer is empty.
func (b *Buffer) locate(offset int) (int, int) {
	pos := 0
	for i, s := range b.spans {
		if offset < pos+s.n || i == len(b.spans)-1 {
			return i, pos
		}
		pos += s.n
	}
	return len(b.spans), pos
}

// split ensures a run boundary at offset.
func (b *Buffer) split(offset int) {
	pos := 0
	for i, s := range b.spans {
		if offset > pos && offset < pos+s.n {
			head := span{n: offset - pos, tag: s.tag}
			tail := span{n: s.n - head.n, tag: s.tag}
			b.spans = slices.Replace(b.spans, i, i+1, head, tail)
			return
		}
		pos += s.n
	}
}

// normalize drops empty runs, merges adjacent runs with equal tags and
// reconciles tag references against the counts taken before the mutation.
func (b *Buffer) normalize(before map[style.ID]int) {
	out := b.spans[:0]
	for _, s := range b.spans {
		if s.n == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].tag == s.tag {
			out[n-1].n += s.n
			continue
		}
		out = append(out, s)
	}
	b.spans = out

	if b.tracker == nil {
		return
	}
	after := b.tagCounts()
	for id, n := range after {
		for range n - before[id] {
			b.tracker.Retain(id)
		}
	}
	for id, n := range before {
		for range n - after[id] {
			b.tracker.Release(id)
		}
	}
}

func (b *Buffer) tagCounts() map[style.ID]int {
	counts := make(map[style.ID]int, len(b.spans))
	for _, s := range b.spans {
		if s.tag != style.None {
			counts[s.tag]++
		}
	}
	return counts
}

func (b *Buffer) clampRange(start, end int) (int, int) {
	start = max(0, min(start, len(b.data)))
	end = max(start, min(end, len(b.data)))
	return start, end
}
