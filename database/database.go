// Package database stores an optional sqlite report of conversion runs.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"mdinliner/types"

	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase initializes and returns a report database connection
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Create table if it doesn't exist
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		relative_path TEXT NOT NULL UNIQUE,
		converted_images INTEGER,
		skipped_images INTEGER,
		status TEXT,
		error TEXT,
		converted_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_relative_path ON documents(relative_path);
	CREATE INDEX IF NOT EXISTS idx_status ON documents(status);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating report schema: %v", err)
	}

	return db, nil
}

// OpenDatabase opens an existing report database connection
func OpenDatabase(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", dbPath)
}

// StoreDocumentRecord stores one processed document in the report database.
// Re-running a conversion over the same source replaces the previous row
// for each document.
func StoreDocumentRecord(db *sql.DB, record types.DocumentRecord) error {
	stmt, err := db.Prepare(`
		INSERT OR REPLACE INTO documents (
			relative_path, converted_images, skipped_images, status, error, converted_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("cannot prepare statement for %s: %v", record.RelativePath, err)
	}
	defer stmt.Close()

	convertedAt := record.ConvertedAt
	if convertedAt == "" {
		convertedAt = time.Now().Format(time.RFC3339)
	}

	_, err = stmt.Exec(
		record.RelativePath,
		record.ConvertedImages,
		record.SkippedImages,
		record.Status,
		record.ErrorMessage,
		convertedAt,
	)
	if err != nil {
		return fmt.Errorf("cannot insert record for %s: %v", record.RelativePath, err)
	}

	return nil
}

// RunStats contains statistics accumulated in the report database
type RunStats struct {
	TotalDocuments  int
	ConvertedImages int
	SkippedImages   int
	FailedDocuments int
}

// GetRunStats retrieves statistics about recorded conversions
func GetRunStats(db *sql.DB) (*RunStats, error) {
	var stats RunStats

	err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&stats.TotalDocuments)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %v", err)
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(converted_images), 0), COALESCE(SUM(skipped_images), 0)
		FROM documents
	`).Scan(&stats.ConvertedImages, &stats.SkippedImages)
	if err != nil {
		return nil, fmt.Errorf("failed to sum image counts: %v", err)
	}

	err = db.QueryRow("SELECT COUNT(*) FROM documents WHERE status = 'failed'").Scan(&stats.FailedDocuments)
	if err != nil {
		return nil, fmt.Errorf("failed to count failed documents: %v", err)
	}

	return &stats, nil
}
