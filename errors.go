package textedit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the textedit package.
var (
	// ErrOutOfRange is returned when a glyph index or text offset lies
	// outside the document.
	ErrOutOfRange = errors.New("textedit: index out of range")

	// ErrReentrantEdit is returned when an edit is attempted from a
	// listener while the document is being rebuilt.
	ErrReentrantEdit = errors.New("textedit: edit during rebuild")

	// ErrNoClipboard is returned by clipboard operations given a nil
	// clipboard.
	ErrNoClipboard = errors.New("textedit: no clipboard")
)

// OutOfRangeError reports an index outside [0, Limit].
type OutOfRangeError struct {
	Op    string
	Index int
	Limit int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("textedit: %s: index %d out of range [0, %d]", e.Op, e.Index, e.Limit)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
