// Package sqlite provides a SQLite-backed session store so OAuth flows
// and credentials survive process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/courseloft/syllaboard/internal/adapters/driven/session/sqlite/migrations"
	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// Store is a SQLite-backed session store. Timestamps are stored as unix
// seconds so comparisons stay portable across driver versions.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.syllaboard/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".syllaboard", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveFlowState stores the pending flow for a session, replacing any
// previous one.
func (s *Store) SaveFlowState(ctx context.Context, state domain.FlowState) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flow_states (session_id, state, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			state = excluded.state,
			expires_at = excluded.expires_at
	`, state.SessionID, state.State, state.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("saving flow state: %w", err)
	}
	return nil
}

// ConsumeFlowState returns and removes the pending flow for a session.
// The read and delete run in one transaction so concurrent callbacks
// cannot both observe the same state.
func (s *Store) ConsumeFlowState(ctx context.Context, sessionID string) (*domain.FlowState, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var state domain.FlowState
	var expiresAt int64
	row := tx.QueryRowContext(ctx,
		"SELECT session_id, state, expires_at FROM flow_states WHERE session_id = ?",
		sessionID)
	if err := row.Scan(&state.SessionID, &state.State, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading flow state: %w", err)
	}
	state.ExpiresAt = time.Unix(expiresAt, 0)

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM flow_states WHERE session_id = ?", sessionID); err != nil {
		return nil, fmt.Errorf("deleting flow state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	if state.IsExpired() {
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

// SaveCredentials stores the credentials for a session.
func (s *Store) SaveCredentials(ctx context.Context, creds domain.Credentials) error {
	now := time.Now().UTC()
	if creds.CreatedAt.IsZero() {
		creds.CreatedAt = now
	}
	creds.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (session_id, access_token, token_type, expiry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`, creds.SessionID, creds.AccessToken, creds.TokenType,
		unixOrZero(creds.Expiry), creds.CreatedAt.Unix(), creds.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// GetCredentials returns the credentials for a session.
func (s *Store) GetCredentials(ctx context.Context, sessionID string) (*domain.Credentials, error) {
	var creds domain.Credentials
	var expiry, createdAt, updatedAt int64

	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, access_token, token_type, expiry, created_at, updated_at
		FROM credentials WHERE session_id = ?
	`, sessionID)
	if err := row.Scan(&creds.SessionID, &creds.AccessToken, &creds.TokenType,
		&expiry, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds.Expiry = timeOrZero(expiry)
	creds.CreatedAt = time.Unix(createdAt, 0).UTC()
	creds.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &creds, nil
}

// DeleteCredentials removes the credentials for a session.
func (s *Store) DeleteCredentials(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM credentials WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}

// unixOrZero maps the zero time to 0 so "never expires" round-trips.
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(unix int64) time.Time {
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}
