package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Cloud-Dark/anyany/internal/collab"
)

// DB is the SQLite-backed session store. One interaction row is written per
// ask or collaboration run; its intermediate records and call events go to
// their own tables so history can be rendered without re-parsing summaries.
type DB struct {
	db   *sql.DB
	path string
}

// OpenDB opens (or creates) the database under storageDir.
func OpenDB(storageDir string) (*DB, error) {
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dbPath := filepath.Join(storageDir, "anyany.db")
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Single connection for writes, WAL allows concurrent reads
	db.SetMaxOpenConns(2)

	s := &DB{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *DB) migrate() error {
	ddl := `
	CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS interactions (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		mode        TEXT NOT NULL,
		input       TEXT NOT NULL,
		summary     TEXT,
		created_at  TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_session ON interactions(session_id);

	CREATE TABLE IF NOT EXISTS records (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		interaction_id TEXT NOT NULL,
		seq            INTEGER NOT NULL,
		round          INTEGER,
		step           INTEGER,
		provider       TEXT NOT NULL,
		model          TEXT NOT NULL,
		input          TEXT,
		response       TEXT,
		confidence     INTEGER,
		FOREIGN KEY (interaction_id) REFERENCES interactions(id)
	);
	CREATE INDEX IF NOT EXISTS idx_records_interaction ON records(interaction_id);

	CREATE TABLE IF NOT EXISTS events (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id     TEXT NOT NULL,
		interaction_id TEXT,
		type           TEXT NOT NULL,
		data           TEXT,
		created_at     TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// --- Session operations ---

type SessionInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (s *DB) CreateSession(id, title string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, title, now, now,
	)
	return err
}

func (s *DB) GetSession(id string) (*SessionInfo, error) {
	row := s.db.QueryRow(`SELECT id, title, created_at, updated_at FROM sessions WHERE id = ?`, id)
	var si SessionInfo
	if err := row.Scan(&si.ID, &si.Title, &si.CreatedAt, &si.UpdatedAt); err != nil {
		return nil, err
	}
	return &si, nil
}

func (s *DB) LatestSession() (*SessionInfo, error) {
	row := s.db.QueryRow(`SELECT id, title, created_at, updated_at FROM sessions ORDER BY created_at DESC LIMIT 1`)
	var si SessionInfo
	if err := row.Scan(&si.ID, &si.Title, &si.CreatedAt, &si.UpdatedAt); err != nil {
		return nil, err
	}
	return &si, nil
}

func (s *DB) ListSessions(limit int) ([]SessionInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, title, created_at, updated_at FROM sessions ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []SessionInfo
	for rows.Next() {
		var si SessionInfo
		if err := rows.Scan(&si.ID, &si.Title, &si.CreatedAt, &si.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, si)
	}
	return sessions, rows.Err()
}

// TouchSession bumps updated_at after new activity in the session.
func (s *DB) TouchSession(id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, now, id)
	return err
}

// --- Interactions ---

type InteractionRow struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Input     string `json:"input"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

// SaveReport persists one collaboration run: the interaction row, its
// ordered records, and every call event, all in one transaction.
func (s *DB) SaveReport(sessionID, interactionID string, report *collab.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = tx.Exec(
		`INSERT INTO interactions (id, session_id, mode, input, summary, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		interactionID, sessionID, string(report.Mode), report.Input, report.Summary, now,
	)
	if err != nil {
		return err
	}

	for i, r := range report.Records {
		_, err = tx.Exec(
			`INSERT INTO records (interaction_id, seq, round, step, provider, model, input, response, confidence)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			interactionID, i, r.Round, r.Step, r.Agent.Provider, r.Agent.Model, r.Input, r.Response, r.Confidence,
		)
		if err != nil {
			return err
		}
	}

	for _, ev := range report.Calls {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			`INSERT INTO events (session_id, interaction_id, type, data, created_at) VALUES (?, ?, 'call', ?, ?)`,
			sessionID, interactionID, string(data), now,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sessionID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// SaveAsk persists a single-provider ask as an interaction without records.
func (s *DB) SaveAsk(sessionID, interactionID, input, response string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(
		`INSERT INTO interactions (id, session_id, mode, input, summary, created_at) VALUES (?, ?, 'ask', ?, ?, ?)`,
		interactionID, sessionID, input, response, now,
	)
	return err
}

func (s *DB) GetInteraction(id string) (*InteractionRow, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, mode, input, COALESCE(summary, ''), created_at FROM interactions WHERE id = ?`, id)
	var ir InteractionRow
	if err := row.Scan(&ir.ID, &ir.SessionID, &ir.Mode, &ir.Input, &ir.Summary, &ir.CreatedAt); err != nil {
		return nil, err
	}
	return &ir, nil
}

func (s *DB) ListInteractions(sessionID string, limit int) ([]InteractionRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, mode, input, COALESCE(summary, ''), created_at
		 FROM interactions WHERE session_id = ? ORDER BY created_at DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []InteractionRow
	for rows.Next() {
		var ir InteractionRow
		if err := rows.Scan(&ir.ID, &ir.SessionID, &ir.Mode, &ir.Input, &ir.Summary, &ir.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

// GetRecords returns an interaction's records in their original order.
func (s *DB) GetRecords(interactionID string) ([]collab.Record, error) {
	rows, err := s.db.Query(
		`SELECT round, step, provider, model, COALESCE(input, ''), COALESCE(response, ''), confidence
		 FROM records WHERE interaction_id = ? ORDER BY seq`,
		interactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []collab.Record
	for rows.Next() {
		var r collab.Record
		if err := rows.Scan(&r.Round, &r.Step, &r.Agent.Provider, &r.Agent.Model, &r.Input, &r.Response, &r.Confidence); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// --- Event log (append-only) ---

func (s *DB) AppendEvent(sessionID, interactionID, eventType string, data interface{}) (int64, error) {
	var dataStr string
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return 0, err
		}
		dataStr = string(b)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := s.db.Exec(
		`INSERT INTO events (session_id, interaction_id, type, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, interactionID, eventType, dataStr, now,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *DB) EventCount(sessionID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM events WHERE session_id = ?`, sessionID).Scan(&count)
	return count, err
}

// --- Lifecycle ---

func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) Path() string {
	return s.path
}
