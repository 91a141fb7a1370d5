package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizdrill/quizdrill/internal/quiz"
)

// Mount attaches the quiz operations under the given router. The router is
// expected to run the SessionManager middleware first.
func Mount(r chi.Router, svc *quiz.Service, store quiz.SessionStore) {
	r.Get("/card", GetCardHandler(svc, store))
	r.Post("/submit", SubmitHandler(svc, store))
	r.Post("/navigate", NavigateHandler(svc, store))
	r.Get("/transcript", TranscriptHandler(svc, store))
}

func sessionFor(store quiz.SessionStore, r *http.Request) (*quiz.Session, bool) {
	key := sessionKeyFromContext(r.Context())
	if key == "" {
		return nil, false
	}
	return store.Get(key)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func GetCardHandler(svc *quiz.Service, store quiz.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(store, r)
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		view, err := svc.CurrentCard(sess)
		if err != nil {
			http.Error(w, "internal consistency error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, view)
	}
}

func SubmitHandler(svc *quiz.Service, store quiz.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(store, r)
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		html, err := svc.SubmitAnswer(r.Context(), sess, req.Answer)
		if err != nil {
			http.Error(w, "internal consistency error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"feedback_html": html})
	}
}

func NavigateHandler(svc *quiz.Service, store quiz.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(store, r)
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		var req struct {
			Action string `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		view, err := svc.Navigate(sess, req.Action)
		if err != nil {
			if errors.Is(err, quiz.ErrBadAction) {
				http.Error(w, "action must be next, previous or skip", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal consistency error", http.StatusInternalServerError)
			return
		}
		store.Put(sessionKeyFromContext(r.Context()), sess)
		writeJSON(w, view)
	}
}

func TranscriptHandler(svc *quiz.Service, store quiz.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(store, r)
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		entries, err := svc.Transcript(r.Context(), sess)
		if err != nil {
			http.Error(w, "transcript unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, struct {
			Log     bool             `json:"log"`
			Entries []quiz.EntryView `json:"entries"`
		}{
			Log:     len(entries) > 0,
			Entries: entries,
		})
	}
}
