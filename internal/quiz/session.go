package quiz

import (
	"errors"
	"math/rand/v2"

	"github.com/oklog/ulid/v2"
)

var ErrEmptyDeck = errors.New("deck has no cards")

// Session is one client's quiz state: a random permutation of deck positions,
// a pointer into it, and the key of the session's transcript log. The pointer
// is clamped by every transition, so Index stays in [0, len(Order)) for the
// session's whole lifetime.
type Session struct {
	Order []int  `json:"order"`
	Index int    `json:"index"`
	LogID string `json:"log_id"`
}

// NewSession shuffles [0, deckSize) and allocates a fresh transcript log ID.
func NewSession(deckSize int) (*Session, error) {
	if deckSize <= 0 {
		return nil, ErrEmptyDeck
	}
	return &Session{
		Order: rand.Perm(deckSize),
		Index: 0,
		LogID: ulid.Make().String(),
	}, nil
}

// Advance moves one card forward. At the last card it is a no-op.
func (s *Session) Advance() {
	if s.Index < len(s.Order)-1 {
		s.Index++
	}
}

// Retreat moves one card back. At the first card it is a no-op.
func (s *Session) Retreat() {
	if s.Index > 0 {
		s.Index--
	}
}

// Skip is a distinct caller intent with the same forward-clamp mechanics.
func (s *Session) Skip() { s.Advance() }

// CurrentPosition returns the deck position of the card to display.
func (s *Session) CurrentPosition() int {
	return s.Order[s.Index]
}
