package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/saranrapjs/edgar-parser/pkg/edgar"
)

// ErrNotFound is returned when nothing is cached under the requested key.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database holding raw EDGAR downloads: submissions JSON
// and filing documents exactly as fetched. Decoded results are never stored.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// New creates a new database connection and initializes tables
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) createTables() error {
	submissionsSQL := `
		CREATE TABLE IF NOT EXISTS submissions (
			cik TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);
	`
	if _, err := db.conn.Exec(submissionsSQL); err != nil {
		return fmt.Errorf("failed to create submissions table: %w", err)
	}

	documentsSQL := `
		CREATE TABLE IF NOT EXISTS documents (
			cik TEXT NOT NULL,
			accession_number TEXT NOT NULL,
			name TEXT NOT NULL,
			form TEXT NOT NULL DEFAULT '',
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (cik, accession_number, name)
		);
	`
	if _, err := db.conn.Exec(documentsSQL); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	return nil
}

func (db *DB) timestamp() string {
	return db.now().UTC().Format(time.RFC3339)
}

// StoreSubmissions stores the submissions JSON data in the database
func (db *DB) StoreSubmissions(cik string, submissions *edgar.Submissions) error {
	data, err := json.Marshal(submissions)
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO submissions (cik, data, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := db.conn.Exec(query, cik, data, db.timestamp()); err != nil {
		return fmt.Errorf("failed to store submissions: %w", err)
	}
	return nil
}

// GetSubmissions retrieves submissions data from the database
func (db *DB) GetSubmissions(cik string) (*edgar.Submissions, error) {
	var data []byte
	err := db.conn.QueryRow("SELECT data FROM submissions WHERE cik = ?", cik).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("submissions for CIK %s: %w", cik, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}

	var submissions edgar.Submissions
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submissions: %w", err)
	}
	return &submissions, nil
}

// AreSubmissionsStale checks if the cached submissions for cik are missing
// or older than maxAge.
func (db *DB) AreSubmissionsStale(cik string, maxAge time.Duration) (bool, error) {
	return db.isStale("SELECT updated_at FROM submissions WHERE cik = ?", maxAge, cik)
}

// StoreDocument stores one raw filing document.
func (db *DB) StoreDocument(filing edgar.Filing, name string, data []byte) error {
	query := `
		INSERT OR REPLACE INTO documents (cik, accession_number, name, form, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.conn.Exec(query, filing.CIK, filing.AccessionNumber, name, filing.Form, data, db.timestamp()); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return nil
}

// GetDocument retrieves a raw filing document.
func (db *DB) GetDocument(cik, accession, name string) ([]byte, error) {
	query := `
		SELECT data
		FROM documents
		WHERE cik = ? AND accession_number = ? AND name = ?
	`
	var data []byte
	if err := db.conn.QueryRow(query, cik, accession, name).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s/%s/%s: %w", cik, accession, name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return data, nil
}

// AreDocumentsStale checks if a cached document is missing or older than
// maxAge.
func (db *DB) AreDocumentsStale(cik, accession, name string, maxAge time.Duration) (bool, error) {
	query := "SELECT updated_at FROM documents WHERE cik = ? AND accession_number = ? AND name = ?"
	return db.isStale(query, maxAge, cik, accession, name)
}

// CachedDocument describes a stored document without its contents.
type CachedDocument struct {
	CIK             string
	AccessionNumber string
	Name            string
	Form            string
	UpdatedAt       time.Time
}

// ListDocuments returns the documents cached for cik, newest first.
func (db *DB) ListDocuments(cik string) ([]CachedDocument, error) {
	query := `
		SELECT accession_number, name, form, updated_at
		FROM documents
		WHERE cik = ?
		ORDER BY updated_at DESC, accession_number DESC
	`
	rows, err := db.conn.Query(query, cik)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []CachedDocument
	for rows.Next() {
		d := CachedDocument{CIK: cik}
		var updatedAt string
		if err := rows.Scan(&d.AccessionNumber, &d.Name, &d.Form, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (db *DB) isStale(query string, maxAge time.Duration, args ...any) (bool, error) {
	var updatedAt string
	err := db.conn.QueryRow(query, args...).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil // nothing cached, consider stale
		}
		return false, fmt.Errorf("failed to query timestamp: %w", err)
	}

	timestamp, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return db.now().Sub(timestamp) > maxAge, nil
}
