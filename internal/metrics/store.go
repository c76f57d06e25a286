package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/diasm3/customer-cs/internal/types"
)

// Mode represents the retrieval mode being tracked.
type Mode string

const (
	ModeHybrid   Mode = "hybrid"
	ModeFulltext Mode = "fulltext"
	ModeVector   Mode = "vector"
	ModeFallback Mode = "fallback"
	ModeAnalyze  Mode = "analyze"
)

// Store manages SQLite persistence for search counts.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store with the database at ~/.customer-cs/stats.db.
// The directory and database file are created if they don't exist.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	statsDir := filepath.Join(homeDir, ".customer-cs")
	if err := os.MkdirAll(statsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .customer-cs directory: %w", err)
	}

	dbPath := filepath.Join(statsDir, "stats.db")
	return NewStoreWithPath(dbPath)
}

// NewStoreWithPath creates a new Store with a custom database path.
// This is useful for testing.
func NewStoreWithPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS search_counts (
			mode TEXT NOT NULL,
			intent TEXT NOT NULL,
			date TEXT NOT NULL,
			count INTEGER DEFAULT 0,
			PRIMARY KEY (mode, intent, date)
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

// IncrementSearch increments the count for the given mode and detected
// intent for today's date.
func (s *Store) IncrementSearch(mode Mode, intent types.Intent) error {
	today := time.Now().Format("2006-01-02")

	upsertSQL := `
		INSERT INTO search_counts (mode, intent, date, count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(mode, intent, date) DO UPDATE SET count = count + 1;
	`
	_, err := s.db.Exec(upsertSQL, string(mode), string(intent), today)
	if err != nil {
		return fmt.Errorf("failed to increment count: %w", err)
	}

	return nil
}

// GetTotalByMode returns the cumulative count for a specific mode across all dates.
func (s *Store) GetTotalByMode(mode Mode) (int64, error) {
	var total int64
	row := s.db.QueryRow(
		"SELECT COALESCE(SUM(count), 0) FROM search_counts WHERE mode = ?",
		string(mode),
	)
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get total for mode %s: %w", mode, err)
	}
	return total, nil
}

// GetAllTotals returns a map of cumulative counts for all modes.
func (s *Store) GetAllTotals() (map[Mode]int64, error) {
	result := make(map[Mode]int64)

	for _, mode := range []Mode{ModeHybrid, ModeFulltext, ModeVector, ModeFallback, ModeAnalyze} {
		result[mode] = 0
	}

	rows, err := s.db.Query(
		"SELECT mode, COALESCE(SUM(count), 0) FROM search_counts GROUP BY mode",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var modeStr string
		var total int64
		if err := rows.Scan(&modeStr, &total); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result[Mode(modeStr)] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// GetTotalsByIntent returns cumulative counts grouped by detected intent.
func (s *Store) GetTotalsByIntent() (map[types.Intent]int64, error) {
	result := make(map[types.Intent]int64)

	rows, err := s.db.Query(
		"SELECT intent, COALESCE(SUM(count), 0) FROM search_counts GROUP BY intent",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query intent totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var intentStr string
		var total int64
		if err := rows.Scan(&intentStr, &total); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result[types.Intent(intentStr)] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// GetCountByDate returns the count for a specific mode and date summed
// over all intents.
func (s *Store) GetCountByDate(mode Mode, date string) (int64, error) {
	var count int64
	row := s.db.QueryRow(
		"SELECT COALESCE(SUM(count), 0) FROM search_counts WHERE mode = ? AND date = ?",
		string(mode), date,
	)
	if err := row.Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get count: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
