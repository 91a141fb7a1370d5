package transcript

import (
	"context"
	"database/sql"
)

// SQLLog writes one row per entry, so concurrent appends to the same log
// never overwrite each other. Rows come back ordered by insertion id.
type SQLLog struct {
	db *sql.DB
}

func NewSQLLog(db *sql.DB) *SQLLog {
	return &SQLLog{db: db}
}

func (s *SQLLog) Append(ctx context.Context, logID string, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcript_log (log_id, ts, deck_index, question, user_answer, feedback)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		logID, e.Timestamp, e.DeckIndex, e.Question, e.UserAnswer, e.Feedback)
	return err
}

func (s *SQLLog) ReadAll(ctx context.Context, logID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, deck_index, question, user_answer, feedback
		 FROM transcript_log WHERE log_id=$1 ORDER BY id`, logID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Timestamp, &e.DeckIndex, &e.Question, &e.UserAnswer, &e.Feedback); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if out == nil {
		out = []Entry{}
	}
	return out, rows.Err()
}
