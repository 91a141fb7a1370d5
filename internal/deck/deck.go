package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrOutOfRange = errors.New("card position out of range")

// Card is one flashcard. The answer is Markdown and may be empty.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck is the ordered flashcard collection loaded at startup. It is never
// mutated after Load, so it is safe to share across requests without locking.
type Deck struct {
	cards []Card
}

// Load reads a JSON array of {question, answer} records. Any failure here is
// fatal to startup: a quiz cannot serve without its deck.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	d, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", path, err)
	}
	return d, nil
}

func LoadBytes(data []byte) (*Deck, error) {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse deck json: %w", err)
	}
	for i, c := range cards {
		if c.Question == "" {
			return nil, fmt.Errorf("card %d: empty question", i)
		}
	}
	return &Deck{cards: cards}, nil
}

func (d *Deck) Size() int { return len(d.cards) }

func (d *Deck) Get(pos int) (Card, error) {
	if pos < 0 || pos >= len(d.cards) {
		return Card{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, pos, len(d.cards))
	}
	return d.cards[pos], nil
}
