package notes

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/mattn/go-sqlite3"
)

// NoteStore reads note titles from Apple Notes' own database, read-only.
type NoteStore struct {
	dbPath string
}

// DefaultNoteStorePath returns the NoteStore.sqlite location of the current user.
func DefaultNoteStorePath() (string, error) {
	if runtime.GOOS != "darwin" {
		return "", fmt.Errorf("Apple Notes is only available on macOS")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, "Library", "Group Containers", "group.com.apple.notes", "NoteStore.sqlite"), nil
}

// If dbPath is empty, uses the default macOS path
func NewNoteStore(dbPath string) (*NoteStore, error) {
	var err error
	if dbPath == "" {
		dbPath, err = DefaultNoteStorePath()
		if err != nil {
			return nil, fmt.Errorf("failed to find notes database: %w", err)
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("notes database not found: %s", dbPath)
	}

	return &NoteStore{dbPath: dbPath}, nil
}

func (s *NoteStore) Path() string {
	return s.dbPath
}

// Titles lists the titles of notes that are not marked for deletion.
func (s *NoteStore) Titles() ([]string, error) {
	db, err := sql.Open("sqlite3", "file:"+s.dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open notes database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT ZTITLE1
		FROM ZICCLOUDSYNCINGOBJECT
		WHERE ZTITLE1 IS NOT NULL
			AND (ZMARKEDFORDELETION IS NULL OR ZMARKEDFORDELETION = 0)
		ORDER BY Z_PK
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query note titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan note title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read note titles: %w", err)
	}

	return titles, nil
}
