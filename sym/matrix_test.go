package sym

import (
	"errors"
	"testing"
)

func TestDet(t *testing.T) {
	a, b, c, d := S("a"), S("b"), S("c"), S("d")

	m := NewMatrix(1, 1)
	m.Set(0, 0, a)
	got, err := m.Det()
	if err != nil {
		t.Fatal(err)
	}
	if s := got.String(); s != "a" {
		t.Errorf("got %q, want %q", s, "a")
	}

	m = NewMatrix(2, 2)
	m.Set(0, 0, a)
	m.Set(0, 1, b)
	m.Set(1, 0, c)
	m.Set(1, 1, d)
	got, err = m.Det()
	if err != nil {
		t.Fatal(err)
	}
	if s := got.String(); s != "a*d - b*c" {
		t.Errorf("got %q, want %q", s, "a*d - b*c")
	}

	m = NewMatrix(3, 3)
	for i, v := range []int64{2, 0, 1, 1, 3, 2, 0, 1, 4} {
		m.Set(i/3, i%3, N(v))
	}
	got, err = m.Det()
	if err != nil {
		t.Fatal(err)
	}
	if s := got.String(); s != "21" {
		t.Errorf("got %q, want %q", s, "21")
	}
}

func TestDetSymmetricCancellation(t *testing.T) {
	// determinants of singular symbolic matrices cancel structurally
	a, b := S("a"), S("b")
	m := NewMatrix(2, 2)
	m.Set(0, 0, a)
	m.Set(0, 1, b)
	m.Set(1, 0, a)
	m.Set(1, 1, b)
	got, err := m.Det()
	if err != nil {
		t.Fatal(err)
	}
	if s := got.String(); s != "0" {
		t.Errorf("got %q, want %q", s, "0")
	}
}

func TestDetNonSquare(t *testing.T) {
	m := NewMatrix(2, 3)
	if _, err := m.Det(); !errors.Is(err, ErrNonSquare) {
		t.Errorf("got %v, want ErrNonSquare", err)
	}
}
