package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DeckPath string

	DBDriver string
	DBDSN    string

	// TranscriptDriver selects where session transcripts are persisted:
	// "sql" (default) or "file".
	TranscriptDriver string
	TranscriptDir    string

	// SessionSecret signs the session cookie. Not an auth credential.
	SessionSecret string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	FeedbackTimeout time.Duration

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:         addr,
		DeckPath:         envOr("DECK_PATH", "flashcards.json"),
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		TranscriptDriver: envOr("TRANSCRIPT_DRIVER", "sql"),
		TranscriptDir:    envOr("TRANSCRIPT_DIR", "./runs"),
		SessionSecret:    envOr("SESSION_SECRET", "supersecret-dev-key"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:      envOr("OPENAI_MODEL", "gpt-4o-mini"),
		FeedbackTimeout:  envDur("FEEDBACK_TIMEOUT", 30*time.Second),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if sec, err := strconv.Atoi(v); err == nil {
		return time.Duration(sec) * time.Second
	}
	return def
}

func csvOr(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
