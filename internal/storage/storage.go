package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gitirc/internal/events"
)

// Storage is the SQLite log of delivered notifications.
type Storage struct {
	db *sql.DB
}

// New opens an existing notification database.
// dbPath should be an absolute path to the SQLite database file
func New(dbPath string) (*Storage, error) {
	_, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("database does not exist at %s (run gitirc init to create)", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Storage{db: db}, nil
}

// InitDB creates a new database file and initializes the schema
func InitDB(dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		return fmt.Errorf("database already exists at %s", dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Save appends a notification to the log.
func (s *Storage) Save(n *events.Notification) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	lines, err := n.LinesJSON()
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO notifications (id, delivery_id, kind, repo, lines, received_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.DeliveryID, n.Kind, n.Repo, lines, n.ReceivedAt, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// Recent returns the newest notifications, optionally filtered by kind.
func (s *Storage) Recent(limit int, kind string) ([]*events.Notification, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, delivery_id, kind, repo, lines, received_at
		FROM notifications`
	args := []interface{}{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*events.Notification
	for rows.Next() {
		var n events.Notification
		var lines string
		if err := rows.Scan(&n.ID, &n.DeliveryID, &n.Kind, &n.Repo, &lines, &n.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if err := json.Unmarshal([]byte(lines), &n.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal lines for %s: %w", n.ID, err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}

// Count returns the total number of logged notifications.
func (s *Storage) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM notifications").Scan(&count); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}
