package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ajitpratap0/clubroster/internal/roster"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS member (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS member_role (
	member_pos INTEGER NOT NULL,
	position INTEGER NOT NULL,
	role TEXT NOT NULL,
	PRIMARY KEY (member_pos, position)
);

CREATE TABLE IF NOT EXISTS member_event_role (
	member_pos INTEGER NOT NULL,
	position INTEGER NOT NULL,
	event TEXT NOT NULL,
	role TEXT NOT NULL,
	unassigned INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (member_pos, position)
);

CREATE TABLE IF NOT EXISTS event (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	starts_at TEXT NOT NULL,
	ends_at TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS event_role (
	event_pos INTEGER NOT NULL,
	position INTEGER NOT NULL,
	role TEXT NOT NULL,
	PRIMARY KEY (event_pos, position)
);

CREATE TABLE IF NOT EXISTS roster (
	event_pos INTEGER NOT NULL,
	position INTEGER NOT NULL,
	member TEXT NOT NULL,
	PRIMARY KEY (event_pos, position)
);
`

var dataTables = []string{"member", "member_role", "member_event_role", "event", "event_role", "roster"}

// SQLiteStore implements Store on a SQLite database. Rows mirror the
// persisted Document: rosters and held roles refer to entities by name, so
// relationship checks stay with the roster validator rather than foreign keys.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection: a single logical writer, and ":memory:" databases are
	// per-connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema in %s: %w", path, err)
	}
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// sqliteDSN turns path into a file: URI so that '?' or '#' in the path is
// escaped rather than read as the start of the query string.
func sqliteDSN(path string) (string, error) {
	if path == ":memory:" {
		return path + "?" + sqlitePragmas, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: sqlitePragmas}
	return u.String(), nil
}

// Load reads every table back into a graph.
func (s *SQLiteStore) Load(ctx context.Context) (roster.Graph, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'saved_at'").Scan(&savedAt)
	if err == sql.ErrNoRows {
		return roster.Graph{}, ErrNoData
	}
	if err != nil {
		return roster.Graph{}, fmt.Errorf("reading meta: %w", err)
	}

	doc := Document{Version: FormatVersion}
	if err := s.loadMembers(ctx, &doc); err != nil {
		return roster.Graph{}, err
	}
	if err := s.loadEvents(ctx, &doc); err != nil {
		return roster.Graph{}, err
	}
	g, err := DecodeDocument(doc)
	if err != nil {
		return roster.Graph{}, fmt.Errorf("decoding %s: %w: %w", s.path, ErrCorrupt, err)
	}
	s.logger.Debug("roster loaded", "path", s.path, "saved_at", savedAt, "members", len(g.Members), "events", len(g.Events))
	return g, nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, doc *Document) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name, phone, email FROM member ORDER BY position")
	if err != nil {
		return fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec MemberRecord
		if err := rows.Scan(&rec.Name, &rec.Phone, &rec.Email); err != nil {
			return fmt.Errorf("scanning member: %w", err)
		}
		doc.Members = append(doc.Members, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating members: %w", err)
	}

	roleRows, err := s.db.QueryContext(ctx, "SELECT member_pos, role FROM member_role ORDER BY member_pos, position")
	if err != nil {
		return fmt.Errorf("querying member roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var pos int
		var role string
		if err := roleRows.Scan(&pos, &role); err != nil {
			return fmt.Errorf("scanning member role: %w", err)
		}
		if pos < 0 || pos >= len(doc.Members) {
			return fmt.Errorf("member role references missing member row %d", pos)
		}
		doc.Members[pos].Roles = append(doc.Members[pos].Roles, role)
	}
	if err := roleRows.Err(); err != nil {
		return fmt.Errorf("iterating member roles: %w", err)
	}

	heldRows, err := s.db.QueryContext(ctx,
		"SELECT member_pos, event, role, unassigned FROM member_event_role ORDER BY member_pos, position")
	if err != nil {
		return fmt.Errorf("querying member event roles: %w", err)
	}
	defer heldRows.Close()
	for heldRows.Next() {
		var pos int
		var rec EventRoleRecord
		if err := heldRows.Scan(&pos, &rec.Event, &rec.Role, &rec.Unassigned); err != nil {
			return fmt.Errorf("scanning member event role: %w", err)
		}
		if pos < 0 || pos >= len(doc.Members) {
			return fmt.Errorf("event role references missing member row %d", pos)
		}
		doc.Members[pos].EventRoles = append(doc.Members[pos].EventRoles, rec)
	}
	return heldRows.Err()
}

func (s *SQLiteStore) loadEvents(ctx context.Context, doc *Document) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name, starts_at, ends_at, detail FROM event ORDER BY position")
	if err != nil {
		return fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec EventRecord
		if err := rows.Scan(&rec.Name, &rec.From, &rec.To, &rec.Detail); err != nil {
			return fmt.Errorf("scanning event: %w", err)
		}
		doc.Events = append(doc.Events, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating events: %w", err)
	}

	roleRows, err := s.db.QueryContext(ctx, "SELECT event_pos, role FROM event_role ORDER BY event_pos, position")
	if err != nil {
		return fmt.Errorf("querying event roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var pos int
		var role string
		if err := roleRows.Scan(&pos, &role); err != nil {
			return fmt.Errorf("scanning event role: %w", err)
		}
		if pos < 0 || pos >= len(doc.Events) {
			return fmt.Errorf("event role references missing event row %d", pos)
		}
		doc.Events[pos].Roles = append(doc.Events[pos].Roles, role)
	}
	if err := roleRows.Err(); err != nil {
		return fmt.Errorf("iterating event roles: %w", err)
	}

	rosterRows, err := s.db.QueryContext(ctx, "SELECT event_pos, member FROM roster ORDER BY event_pos, position")
	if err != nil {
		return fmt.Errorf("querying rosters: %w", err)
	}
	defer rosterRows.Close()
	for rosterRows.Next() {
		var pos int
		var member string
		if err := rosterRows.Scan(&pos, &member); err != nil {
			return fmt.Errorf("scanning roster entry: %w", err)
		}
		if pos < 0 || pos >= len(doc.Events) {
			return fmt.Errorf("roster entry references missing event row %d", pos)
		}
		doc.Events[pos].Roster = append(doc.Events[pos].Roster, member)
	}
	return rosterRows.Err()
}

// Save rewrites every table in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, g roster.Graph) error {
	doc := EncodeGraph(g)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range dataTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, m := range doc.Members {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO member (position, name, phone, email) VALUES (?, ?, ?, ?)",
			i, m.Name, m.Phone, m.Email); err != nil {
			return fmt.Errorf("inserting member %s: %w", m.Name, err)
		}
		for j, r := range m.Roles {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO member_role (member_pos, position, role) VALUES (?, ?, ?)", i, j, r); err != nil {
				return fmt.Errorf("inserting role of %s: %w", m.Name, err)
			}
		}
		for j, r := range m.EventRoles {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO member_event_role (member_pos, position, event, role, unassigned) VALUES (?, ?, ?, ?, ?)",
				i, j, r.Event, r.Role, r.Unassigned); err != nil {
				return fmt.Errorf("inserting event role of %s: %w", m.Name, err)
			}
		}
	}

	for i, ev := range doc.Events {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO event (position, name, starts_at, ends_at, detail) VALUES (?, ?, ?, ?, ?)",
			i, ev.Name, ev.From, ev.To, ev.Detail); err != nil {
			return fmt.Errorf("inserting event %s: %w", ev.Name, err)
		}
		for j, r := range ev.Roles {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO event_role (event_pos, position, role) VALUES (?, ?, ?)", i, j, r); err != nil {
				return fmt.Errorf("inserting role of %s: %w", ev.Name, err)
			}
		}
		for j, n := range ev.Roster {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO roster (event_pos, position, member) VALUES (?, ?, ?)", i, j, n); err != nil {
				return fmt.Errorf("inserting roster entry of %s: %w", ev.Name, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES ('saved_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("updating meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing roster: %w", err)
	}
	return nil
}

// Quarantine copies the database to <path>.<id>.invalid and empties it, so
// the next Load starts from nothing.
func (s *SQLiteStore) Quarantine() (string, error) {
	if s.path == ":memory:" {
		return "", fmt.Errorf("quarantining an in-memory database is not supported")
	}
	ctx := context.Background()
	dest := fmt.Sprintf("%s.%s.invalid", s.path, uuid.New().String()[:8])
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return "", fmt.Errorf("quarantining %s: %w", s.path, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, table := range append(dataTables, "meta") {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return "", fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing quarantine: %w", err)
	}
	return dest, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
