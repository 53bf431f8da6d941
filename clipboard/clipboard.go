// Package clipboard provides the clipboard channels a document copies to
// and pastes from.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnsupported is returned by System when the platform has no usable
// clipboard (for example a Linux host without xclip, xsel or wl-clipboard).
var ErrUnsupported = errors.New("clipboard: unsupported on this system")

// Clipboard exchanges plain text with a clipboard.
type Clipboard interface {
	Text() (string, error)
	SetText(s string) error
}

// Memory is an in-process clipboard. The zero value is empty and ready to
// use. Memory is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	text string
}

// Text returns the stored text.
func (m *Memory) Text() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// SetText stores s.
func (m *Memory) SetText(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = s
	return nil
}

// System is the operating system clipboard.
type System struct{}

// Text reads the system clipboard.
func (System) Text() (string, error) {
	if sysclip.Unsupported {
		return "", ErrUnsupported
	}
	s, err := sysclip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard: read: %w", err)
	}
	return s, nil
}

// SetText writes s to the system clipboard.
func (System) SetText(s string) error {
	if sysclip.Unsupported {
		return ErrUnsupported
	}
	if err := sysclip.WriteAll(s); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}
