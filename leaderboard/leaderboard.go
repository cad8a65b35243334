// Package leaderboard stores finished runs in a local SQLite table.
package leaderboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTop is the number of entries returned when Top is asked for n <= 0.
const DefaultTop = 10

// ErrInvalidEntry is returned by Submit for entries missing required fields.
var ErrInvalidEntry = errors.New("invalid leaderboard entry")

// Entry is one finished run: the days the ecosystem survived and the
// species configuration (ecosystem DNA) that produced it.
type Entry struct {
	ID        int64
	Player    string
	Days      int
	DNA       string // species records as JSON
	Seed      int64
	CreatedAt time.Time
}

// Board is a SQLite-backed score table.
type Board struct {
	db *sql.DB
}

// Open opens (creating if needed) the leaderboard database at path.
func Open(path string) (*Board, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Board{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			days INTEGER NOT NULL,
			dna TEXT NOT NULL,
			seed INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS scores_days ON scores(days DESC, id ASC);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Submit stores e and returns its id. Player and DNA are required and DNA
// must be valid JSON. A zero CreatedAt is set to the current time.
func (b *Board) Submit(ctx context.Context, e Entry) (int64, error) {
	if strings.TrimSpace(e.Player) == "" {
		return 0, fmt.Errorf("%w: missing player", ErrInvalidEntry)
	}
	if e.DNA == "" || !json.Valid([]byte(e.DNA)) {
		return 0, fmt.Errorf("%w: ecosystem DNA is not valid JSON", ErrInvalidEntry)
	}
	if e.Days < 0 {
		return 0, fmt.Errorf("%w: negative days %d", ErrInvalidEntry, e.Days)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := b.db.ExecContext(ctx,
		`INSERT INTO scores(player, days, dna, seed, created_at) VALUES(?,?,?,?,?)`,
		e.Player, e.Days, e.DNA, e.Seed, e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert score: %w", err)
	}
	return res.LastInsertId()
}

// Top returns the n best entries, most days first. Ties go to the earlier submission.
func (b *Board) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = DefaultTop
	}
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, player, days, dna, seed, created_at FROM scores ORDER BY days DESC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Player, &e.Days, &e.DNA, &e.Seed, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("score %d: bad timestamp %q: %w", e.ID, created, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Rank returns the 1-based position a run of days would take on the board.
func (b *Board) Rank(ctx context.Context, days int) (int, error) {
	var better int
	row := b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores WHERE days > ?`, days)
	if err := row.Scan(&better); err != nil {
		return 0, fmt.Errorf("rank: %w", err)
	}
	return better + 1, nil
}

// Close closes the database.
func (b *Board) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
