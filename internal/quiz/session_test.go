package quiz

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNewSessionPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 50, 500} {
		s, err := NewSession(n)
		if err != nil {
			t.Fatalf("NewSession(%d): %v", n, err)
		}
		if len(s.Order) != n {
			t.Fatalf("NewSession(%d): order length %d", n, len(s.Order))
		}
		seen := make([]bool, n)
		for _, v := range s.Order {
			if v < 0 || v >= n {
				t.Fatalf("NewSession(%d): value %d out of range", n, v)
			}
			if seen[v] {
				t.Fatalf("NewSession(%d): duplicate value %d", n, v)
			}
			seen[v] = true
		}
		if s.Index != 0 {
			t.Errorf("NewSession(%d): index = %d, want 0", n, s.Index)
		}
		if s.LogID == "" {
			t.Errorf("NewSession(%d): empty log id", n)
		}
	}
}

func TestNewSessionEmptyDeck(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewSession(n); !errors.Is(err, ErrEmptyDeck) {
			t.Errorf("NewSession(%d) = %v, want ErrEmptyDeck", n, err)
		}
	}
}

func TestNavigationBoundaries(t *testing.T) {
	s, err := NewSession(3)
	if err != nil {
		t.Fatal(err)
	}

	s.Retreat()
	if s.Index != 0 {
		t.Errorf("retreat at start: index = %d, want 0", s.Index)
	}

	s.Advance()
	s.Advance()
	if s.Index != 2 {
		t.Fatalf("index = %d, want 2", s.Index)
	}
	s.Advance()
	if s.Index != 2 {
		t.Errorf("advance at end: index = %d, want 2", s.Index)
	}
	s.Skip()
	if s.Index != 2 {
		t.Errorf("skip at end: index = %d, want 2", s.Index)
	}

	s.Retreat()
	if s.Index != 1 {
		t.Errorf("retreat: index = %d, want 1", s.Index)
	}
}

func TestNavigationInvariant(t *testing.T) {
	s, err := NewSession(7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		switch rand.IntN(3) {
		case 0:
			s.Advance()
		case 1:
			s.Retreat()
		default:
			s.Skip()
		}
		if s.Index < 0 || s.Index >= len(s.Order) {
			t.Fatalf("step %d: index %d out of [0,%d)", i, s.Index, len(s.Order))
		}
		// CurrentPosition must always be resolvable
		if p := s.CurrentPosition(); p < 0 || p >= 7 {
			t.Fatalf("step %d: position %d out of deck", i, p)
		}
	}
}

func TestSingleCardSession(t *testing.T) {
	s, err := NewSession(1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.CurrentPosition(); got != 0 {
		t.Fatalf("position = %d, want 0", got)
	}
	s.Advance()
	s.Retreat()
	s.Skip()
	if s.Index != 0 || s.CurrentPosition() != 0 {
		t.Errorf("single-card session moved: index=%d pos=%d", s.Index, s.CurrentPosition())
	}
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	if _, ok := st.Get("missing"); ok {
		t.Fatal("Get on empty store returned a session")
	}
	s, _ := NewSession(2)
	st.Put("k", s)
	got, ok := st.Get("k")
	if !ok || got != s {
		t.Fatalf("Get after Put = %v, %v", got, ok)
	}
}
