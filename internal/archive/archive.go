package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/contraband/internal/model"
)

// DBFileName is the archive file inside the database directory.
const DBFileName = "contraband.db"

// Kind is the type of an exported text.
type Kind string

const (
	// KindSummary is a one-line selection summary.
	KindSummary Kind = "summary"
	// KindBriefing is a briefing report.
	KindBriefing Kind = "briefing"
)

// ErrEntryNotFound is returned when no entry has the requested ID.
var ErrEntryNotFound = errors.New("archive entry not found")

// Archive is the export log.
type Archive struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// Clock returns the time stamped on new entries. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the archive in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("archive not found at %s", dbPath)
	} else if err != nil {
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{db: db, dbPath: dbPath, now: opts.Clock}
	if a.now == nil {
		a.now = time.Now
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Path returns the database file path.
func (a *Archive) Path() string {
	return a.dbPath
}

func (a *Archive) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		title TEXT,
		created_at TEXT NOT NULL,
		item_count INTEGER NOT NULL DEFAULT 0,
		unit_count INTEGER NOT NULL DEFAULT 0,
		grand_total INTEGER NOT NULL DEFAULT 0,
		text TEXT NOT NULL,
		model_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_exports_kind ON exports(kind);
	CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// Entry is one exported text.
type Entry struct {
	ID         int64     `json:"id"`
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	ItemCount  int       `json:"item_count"`
	UnitCount  int       `json:"unit_count"`
	GrandTotal int       `json:"grand_total"`
	Text       string    `json:"text"`

	// Model is the selection behind a summary. It is nil for briefings.
	Model *model.RenderModel `json:"model,omitempty"`
}

// NewSummaryEntry builds an entry for a summary export.
func NewSummaryEntry(title, text string, m model.RenderModel) Entry {
	return Entry{
		Kind:       KindSummary,
		Title:      title,
		ItemCount:  m.ItemCount,
		UnitCount:  m.UnitCount,
		GrandTotal: m.GrandTotal,
		Text:       text,
		Model:      &m,
	}
}

// NewBriefingEntry builds an entry for a briefing export.
func NewBriefingEntry(title, text string) Entry {
	return Entry{Kind: KindBriefing, Title: title, Text: text}
}

// Save appends e and returns its ID. CreatedAt is set from the archive clock.
func (a *Archive) Save(ctx context.Context, e Entry) (int64, error) {
	var modelJSON sql.NullString
	if e.Model != nil {
		data, err := json.Marshal(e.Model)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize render model: %w", err)
		}
		modelJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
	INSERT INTO exports (kind, title, created_at, item_count, unit_count, grand_total, text, model_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := a.db.ExecContext(ctx, query,
		string(e.Kind),
		e.Title,
		a.now().UTC().Format(time.RFC3339),
		e.ItemCount,
		e.UnitCount,
		e.GrandTotal,
		e.Text,
		modelJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save export: %w", err)
	}
	return res.LastInsertId()
}

// ListOptions filters List.
type ListOptions struct {
	// Kind restricts results to one kind. Empty means all.
	Kind Kind

	// Limit caps the number of entries. Zero means no limit.
	Limit int
}

// List returns entries newest first. Render models are not loaded.
func (a *Archive) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	query := `
	SELECT id, kind, COALESCE(title, ''), created_at, item_count, unit_count, grand_total, text
	FROM exports
	WHERE (? = '' OR kind = ?)
	ORDER BY id DESC
	`
	args := []any{string(opts.Kind), string(opts.Kind)}
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, created string
		if err := rows.Scan(&e.ID, &kind, &e.Title, &created, &e.ItemCount, &e.UnitCount, &e.GrandTotal, &e.Text); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt = parseTimestamp(created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with id, including its render model.
func (a *Archive) Get(ctx context.Context, id int64) (*Entry, error) {
	query := `
	SELECT id, kind, COALESCE(title, ''), created_at, item_count, unit_count, grand_total, text, model_json
	FROM exports
	WHERE id = ?
	`

	var e Entry
	var kind, created string
	var modelJSON sql.NullString
	err := a.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &kind, &e.Title, &created, &e.ItemCount, &e.UnitCount, &e.GrandTotal, &e.Text, &modelJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	e.Kind = Kind(kind)
	e.CreatedAt = parseTimestamp(created)
	if modelJSON.Valid && modelJSON.String != "" {
		var m model.RenderModel
		if err := json.Unmarshal([]byte(modelJSON.String), &m); err != nil {
			return nil, fmt.Errorf("failed to parse render model: %w", err)
		}
		e.Model = &m
	}
	return &e, nil
}

// Prune deletes entries created before cutoff and returns how many were removed.
func (a *Archive) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := a.db.ExecContext(ctx,
		`DELETE FROM exports WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune exports: %w", err)
	}
	return res.RowsAffected()
}

// timestampFormats contains the timestamp formats the archive may hold.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
