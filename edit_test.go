package textedit

import (
	"errors"
	"testing"

	"github.com/gogpu/textedit/clipboard"
)

// failingClipboard fails every operation.
type failingClipboard struct{}

var errClipboard = errors.New("clipboard down")

func (failingClipboard) Text() (string, error) { return "", errClipboard }
func (failingClipboard) SetText(string) error  { return errClipboard }

func TestSelectAllCopy(t *testing.T) {
	d := newDoc(t, "xyz")
	var cb clipboard.Memory
	d.SelectAll()
	if err := d.Copy(&cb); err != nil {
		t.Fatalf("Copy() = %v", err)
	}
	if got, _ := cb.Text(); got != "xyz" {
		t.Errorf("clipboard = %q, want %q", got, "xyz")
	}
	if c := d.Cursor(); c.Anchor() != 0 || c.Position() != 3 {
		t.Errorf("cursor = (%d, %d), want anchor 0 position 3", c.Anchor(), c.Position())
	}
}

func TestCopy_NoSelection(t *testing.T) {
	d := newDoc(t, "xyz")
	cb := &clipboard.Memory{}
	_ = cb.SetText("keep")
	if err := d.Copy(cb); err != nil {
		t.Fatalf("Copy() = %v", err)
	}
	if got, _ := cb.Text(); got != "keep" {
		t.Errorf("clipboard = %q, want %q", got, "keep")
	}
}

func TestCut(t *testing.T) {
	d := newDoc(t, "hello world")
	cb := &clipboard.Memory{}
	if err := d.Cursor().SetPosition(5, true); err != nil {
		t.Fatal(err)
	}
	d.MoveCursor(MoveEndOfDocument, false)
	if err := d.Cut(cb); err != nil {
		t.Fatalf("Cut() = %v", err)
	}
	if got := d.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
	if got, _ := cb.Text(); got != " world" {
		t.Errorf("clipboard = %q, want %q", got, " world")
	}
	if got := d.Cursor().Position(); got != 5 {
		t.Errorf("Position() = %d, want 5", got)
	}
}

func TestPaste(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		anchor int
		pos    int
		clip   string
		want   string
		cursor int
		opts   []Option
	}{
		{"at caret", "ad", 1, 1, "bc", "abcd", 3, nil},
		{"replaces selection", "aXXd", 1, 3, "bc", "abcd", 3, nil},
		{"multi-line", "ad", 1, 1, "b\r\nc", "ab\ncd", 4, nil},
		{"single-line truncates", "ad", 1, 1, "b\nc", "abd", 2, []Option{WithSingleLine(true)}},
		{"read-only", "ad", 1, 1, "bc", "ad", 1, []Option{WithReadOnly(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t, tt.text, tt.opts...)
			if err := d.Cursor().SetPosition(tt.anchor, true); err != nil {
				t.Fatal(err)
			}
			if err := d.Cursor().SetPosition(tt.pos, false); err != nil {
				t.Fatal(err)
			}
			cb := &clipboard.Memory{}
			_ = cb.SetText(tt.clip)
			if err := d.Paste(cb); err != nil {
				t.Fatalf("Paste() = %v", err)
			}
			if got := d.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := d.Cursor().Position(); got != tt.cursor {
				t.Errorf("Position() = %d, want %d", got, tt.cursor)
			}
			checkDocument(t, d)
		})
	}
}

func TestClipboardErrors(t *testing.T) {
	d := newDoc(t, "abc")
	d.SelectAll()

	if err := d.Copy(nil); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("Copy(nil) = %v, want ErrNoClipboard", err)
	}
	if err := d.Paste(nil); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("Paste(nil) = %v, want ErrNoClipboard", err)
	}
	if err := d.Copy(failingClipboard{}); !errors.Is(err, errClipboard) {
		t.Errorf("Copy() = %v, want wrapped clipboard error", err)
	}
	if err := d.Cut(failingClipboard{}); !errors.Is(err, errClipboard) {
		t.Errorf("Cut() = %v, want wrapped clipboard error", err)
	}
	if got := d.Text(); got != "abc" {
		t.Errorf("Text() after failed cut = %q, want %q", got, "abc")
	}
	if err := d.Paste(failingClipboard{}); !errors.Is(err, errClipboard) {
		t.Errorf("Paste() = %v, want wrapped clipboard error", err)
	}
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		text      string
		selectAll bool
		canCopy   bool
		canCut    bool
		canPaste  bool
		canDelete bool
	}{
		{"empty", nil, "", false, false, false, true, false},
		{"text", nil, "abc", false, false, false, true, true},
		{"selection", nil, "abc", true, true, true, true, true},
		{"read-only", []Option{WithReadOnly(true)}, "abc", true, true, false, false, false},
		{"password", []Option{WithPassword('*')}, "abc", true, false, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t, tt.text, tt.opts...)
			if tt.selectAll {
				d.SelectAll()
			}
			if got := d.CanCopy(); got != tt.canCopy {
				t.Errorf("CanCopy() = %v, want %v", got, tt.canCopy)
			}
			if got := d.CanCut(); got != tt.canCut {
				t.Errorf("CanCut() = %v, want %v", got, tt.canCut)
			}
			if got := d.CanPaste(); got != tt.canPaste {
				t.Errorf("CanPaste() = %v, want %v", got, tt.canPaste)
			}
			if got := d.CanDeleteSelected(); got != tt.canDelete {
				t.Errorf("CanDeleteSelected() = %v, want %v", got, tt.canDelete)
			}
		})
	}
}

func TestReadOnly_RejectsUserEdits(t *testing.T) {
	d := newDoc(t, "abc", WithReadOnly(true))
	cb := &clipboard.Memory{}
	d.SelectAll()

	for name, op := range map[string]func() error{
		"InsertText":     func() error { return d.InsertText("x") },
		"DeleteSelected": d.DeleteSelected,
		"DeleteBackward": d.DeleteBackward,
		"Cut":            func() error { return d.Cut(cb) },
	} {
		if err := op(); err != nil {
			t.Errorf("%s() = %v, want nil", name, err)
		}
	}
	if got := d.Text(); got != "abc" {
		t.Errorf("Text() = %q, want %q", got, "abc")
	}

	// Programmatic edits still apply.
	if err := d.SetText("new"); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "new" {
		t.Errorf("Text() = %q, want %q", got, "new")
	}
}

func TestDeleteKeys(t *testing.T) {
	tests := []struct {
		name        string
		anchor, pos int
		op          func(*Document) error
		want        string
		cursor      int
	}{
		{"backspace", 2, 2, (*Document).DeleteBackward, "acd", 1},
		{"backspace at start", 0, 0, (*Document).DeleteBackward, "abcd", 0},
		{"backspace selection", 1, 3, (*Document).DeleteBackward, "ad", 1},
		{"delete", 2, 2, (*Document).DeleteForward, "abd", 2},
		{"delete at end", 4, 4, (*Document).DeleteForward, "abcd", 4},
		{"delete forward selection", 3, 1, (*Document).DeleteForward, "ad", 1},
		{"delete selection", 3, 1, (*Document).DeleteSelected, "ad", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t, "abcd")
			if err := d.Cursor().SetPosition(tt.anchor, true); err != nil {
				t.Fatal(err)
			}
			if err := d.Cursor().SetPosition(tt.pos, false); err != nil {
				t.Fatal(err)
			}
			if err := tt.op(d); err != nil {
				t.Fatalf("op() = %v", err)
			}
			if got := d.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			c := d.Cursor()
			if c.Position() != tt.cursor || c.Anchor() != tt.cursor {
				t.Errorf("cursor = (%d, %d), want (%d, %d)", c.Position(), c.Anchor(), tt.cursor, tt.cursor)
			}
		})
	}
}

func TestDeleteBackward_JoinsParagraphs(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	if err := d.Cursor().SetPosition(3, true); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "abcd" {
		t.Errorf("Text() = %q, want %q", got, "abcd")
	}
	if got := len(d.Paragraphs()); got != 1 {
		t.Errorf("len(Paragraphs()) = %d, want 1", got)
	}
	if got := d.Cursor().Position(); got != 2 {
		t.Errorf("Position() = %d, want 2", got)
	}
}

func TestInsertText_Multibyte(t *testing.T) {
	d := newDoc(t, "añb")
	if err := d.Cursor().SetPosition(2, true); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertText("é"); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "añéb" {
		t.Errorf("Text() = %q, want %q", got, "añéb")
	}
	if got := d.Cursor().Position(); got != 3 {
		t.Errorf("Position() = %d, want 3", got)
	}
	checkDocument(t, d)
}
