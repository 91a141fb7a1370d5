package http

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quizdrill/quizdrill/internal/quiz"
)

const sessionCookie = "quiz_session"

type ctxKey string

const ctxKeySession ctxKey = "session_key"

func withSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKeySession, key)
}

func sessionKeyFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySession); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

type sessionClaims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// SessionManager gives each browser a stable, tamper-proof session key via an
// HMAC-signed cookie and lazily creates quiz state for new keys. The cookie
// identifies a session; it does not authenticate anyone.
type SessionManager struct {
	hmac  []byte
	store quiz.SessionStore
	svc   *quiz.Service
}

func NewSessionManager(secret string, store quiz.SessionStore, svc *quiz.Service) *SessionManager {
	return &SessionManager{hmac: []byte(secret), store: store, svc: svc}
}

func (m *SessionManager) issue(key string) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Sub: key,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "quizdrill",
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.hmac)
}

func (m *SessionManager) parse(tokenStr string) string {
	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.hmac, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	c, ok := token.Claims.(*sessionClaims)
	if !ok {
		return ""
	}
	return c.Sub
}

// Middleware resolves the client's session key, minting a key and cookie when
// the request carries none (or a forged one), and ensures quiz state exists
// for the key before the handler runs.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var key string
		if c, err := r.Cookie(sessionCookie); err == nil {
			key = m.parse(c.Value)
		}
		if key == "" {
			key = uuid.NewString()
			tok, err := m.issue(key)
			if err != nil {
				http.Error(w, "session setup failed", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    tok,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		if _, ok := m.store.Get(key); !ok {
			sess, err := quiz.NewSession(m.svc.DeckSize())
			if err != nil {
				// zero cards is a server configuration problem, not a client error
				http.Error(w, "deck is empty: check server configuration", http.StatusInternalServerError)
				return
			}
			m.store.Put(key, sess)
		}

		next.ServeHTTP(w, r.WithContext(withSessionKey(r.Context(), key)))
	})
}
