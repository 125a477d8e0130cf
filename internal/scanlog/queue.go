// Package scanlog persists best-effort scan log entries that could not reach
// the backend, so a patrol through a dead zone loses nothing. Entries are
// flushed in FIFO order once connectivity returns.
package scanlog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nwatch/patrol-console/internal/gateway"
)

// LogSender submits one scan log entry to the backend. Implemented by
// *gateway.Client.
type LogSender interface {
	LogScan(ctx context.Context, req gateway.LogScanRequest) error
}

// Entry is one queued scan log.
type Entry struct {
	ID        int64
	QRData    string
	Comment   string
	Location  string
	ScannedAt time.Time
	Attempts  int
}

// Queue is a sqlite-backed FIFO of pending scan logs.
type Queue struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *log.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS scan_log_queue (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	qr_data TEXT NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	scanned_at TIMESTAMP NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 0
);`

// Open opens (creating if needed) the queue database at path.
func Open(path string, logger *log.Logger) (*Queue, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("database error: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema error: %v", err)
	}
	return &Queue{db: db, logger: logger}, nil
}

// Enqueue appends an entry to the queue.
func (q *Queue) Enqueue(e Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	scannedAt := e.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now()
	}
	_, err := q.db.Exec(
		`INSERT INTO scan_log_queue (qr_data, comment, location, scanned_at) VALUES (?, ?, ?, ?)`,
		e.QRData, e.Comment, e.Location, scannedAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue scan log: %v", err)
	}
	q.logger.Printf("Queued offline scan log for %q", e.QRData)
	return nil
}

// Len returns the number of pending entries.
func (q *Queue) Len() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var n int
	err := q.db.QueryRow(`SELECT COUNT(*) FROM scan_log_queue`).Scan(&n)
	return n, err
}

// Pending returns all queued entries in insertion order.
func (q *Queue) Pending() ([]Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pendingLocked()
}

func (q *Queue) pendingLocked() ([]Entry, error) {
	rows, err := q.db.Query(
		`SELECT id, qr_data, comment, location, scanned_at, attempts FROM scan_log_queue ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.QRData, &e.Comment, &e.Location, &e.ScannedAt, &e.Attempts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Flush drains the queue through sender in FIFO order and returns how many
// entries were delivered. A NetworkError stops the flush and keeps the
// remaining entries for a later attempt. A BackendError means the backend
// saw the entry and rejected it; retrying cannot help, so the entry is
// dropped and the flush continues.
func (q *Queue) Flush(ctx context.Context, sender LogSender) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.pendingLocked()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, e := range entries {
		req := gateway.LogScanRequest{QRData: e.QRData, Comment: e.Comment, Location: e.Location}
		if err := sender.LogScan(ctx, req); err != nil {
			if gateway.IsNetworkError(err) {
				if _, uerr := q.db.Exec(`UPDATE scan_log_queue SET attempts = attempts + 1 WHERE id = ?`, e.ID); uerr != nil {
					q.logger.Printf("Failed to bump attempts for entry %d: %v", e.ID, uerr)
				}
				q.logger.Printf("Flush stopped at entry %d (still offline): %v", e.ID, err)
				return sent, err
			}
			q.logger.Printf("Dropping rejected scan log entry %d: %v", e.ID, err)
		} else {
			sent++
		}
		if _, derr := q.db.Exec(`DELETE FROM scan_log_queue WHERE id = ?`, e.ID); derr != nil {
			return sent, fmt.Errorf("dequeue entry %d: %v", e.ID, derr)
		}
	}
	return sent, nil
}

// Close closes the queue database.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.db.Close()
}
