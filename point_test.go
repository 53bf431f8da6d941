package textedit

import "testing"

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2)
	if got := p.Add(Pt(3, 4)); got != Pt(4, 6) {
		t.Errorf("Add() = %v, want %v", got, Pt(4, 6))
	}
	if got := p.Sub(Pt(3, 4)); got != Pt(-2, -2) {
		t.Errorf("Sub() = %v, want %v", got, Pt(-2, -2))
	}
}

func TestRect(t *testing.T) {
	r := Rect{Min: Pt(10, 20), Max: Pt(30, 60)}
	if r.Width() != 20 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 20x40", r.Width(), r.Height())
	}

	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 20), true},
		{Pt(29.9, 59.9), true},
		{Pt(30, 40), false},
		{Pt(5, 30), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
