package quiz

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/quizdrill/quizdrill/internal/deck"
	"github.com/quizdrill/quizdrill/internal/transcript"
)

var ErrBadAction = errors.New("unknown navigate action")

// Evaluator produces Markdown feedback for a question/answer pair. It is
// expected to be slow and fallible; the service never lets its failure reach
// the client as an error.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string) (string, error)
}

// Renderer converts Markdown to sanitized HTML.
type Renderer interface {
	Render(md string) string
}

const (
	ActionNext     = "next"
	ActionPrevious = "previous"
	ActionSkip     = "skip"
)

type CardView struct {
	Question   string `json:"question"`
	AnswerHTML string `json:"answer_html"`
	Pos        int    `json:"pos"`
	Total      int    `json:"total"`
}

type EntryView struct {
	Timestamp    string `json:"timestamp"`
	DeckIndex    int    `json:"deck_index"`
	Question     string `json:"question"`
	UserAnswer   string `json:"user_answer"`
	FeedbackHTML string `json:"feedback_html"`
}

// Service ties the deck, session navigation, transcript log and evaluator
// together; it implements the request-facing quiz operations.
type Service struct {
	deck     *deck.Deck
	log      transcript.Log
	eval     Evaluator
	renderer Renderer
}

func NewService(d *deck.Deck, tl transcript.Log, eval Evaluator, r Renderer) *Service {
	return &Service{deck: d, log: tl, eval: eval, renderer: r}
}

func (s *Service) DeckSize() int { return s.deck.Size() }

// CurrentCard resolves the session's current flashcard. The stored answer is
// rendered to safe HTML; session state is not touched.
func (s *Service) CurrentCard(sess *Session) (CardView, error) {
	card, err := s.deck.Get(sess.CurrentPosition())
	if err != nil {
		return CardView{}, err
	}
	return CardView{
		Question:   card.Question,
		AnswerHTML: s.renderer.Render(card.Answer),
		Pos:        sess.Index,
		Total:      s.deck.Size(),
	}, nil
}

// SubmitAnswer asks the evaluator for feedback on the current card. Evaluator
// failure degrades to a literal error description so the quiz stays usable;
// the raw feedback text (real or fallback) is appended to the transcript
// either way. The session's position does not change.
func (s *Service) SubmitAnswer(ctx context.Context, sess *Session, answer string) (string, error) {
	pos := sess.CurrentPosition()
	card, err := s.deck.Get(pos)
	if err != nil {
		return "", err
	}

	feedback, err := s.eval.Evaluate(ctx, card.Question, answer)
	if err != nil {
		feedback = "Error contacting feedback service: " + err.Error()
	}

	entry := transcript.Entry{
		Timestamp:  time.Now().Format(time.RFC3339),
		DeckIndex:  pos,
		Question:   card.Question,
		UserAnswer: answer,
		Feedback:   feedback,
	}
	if err := s.log.Append(ctx, sess.LogID, entry); err != nil {
		// degraded logging must not fail the interaction
		log.Printf("transcript append failed (log %s): %v", sess.LogID, err)
	}

	return s.renderer.Render(feedback), nil
}

// Navigate applies one of next/previous/skip and returns the resulting card.
// An unknown action is a client error and mutates nothing.
func (s *Service) Navigate(sess *Session, action string) (CardView, error) {
	switch action {
	case ActionNext:
		sess.Advance()
	case ActionPrevious:
		sess.Retreat()
	case ActionSkip:
		sess.Skip()
	default:
		return CardView{}, ErrBadAction
	}
	return s.CurrentCard(sess)
}

// Transcript returns the session's log in append order with feedback rendered
// for display.
func (s *Service) Transcript(ctx context.Context, sess *Session) ([]EntryView, error) {
	entries, err := s.log.ReadAll(ctx, sess.LogID)
	if err != nil {
		return nil, err
	}
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryView{
			Timestamp:    e.Timestamp,
			DeckIndex:    e.DeckIndex,
			Question:     e.Question,
			UserAnswer:   e.UserAnswer,
			FeedbackHTML: s.renderer.Render(e.Feedback),
		})
	}
	return out, nil
}
