// Package dayone reads Day One JSON export bundles.
package dayone

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mrlokans/journal-importer/internal/entities"
)

// ErrMissingEntries is returned when the metadata has no "entries" array.
var ErrMissingEntries = errors.New("JSON file does not contain 'entries' array")

// ErrNoExportFiles is returned when an export root holds no metadata files.
var ErrNoExportFiles = errors.New("no JSON files found")

// MalformedExportError wraps a JSON decoding failure for one metadata file.
type MalformedExportError struct {
	Path string
	Err  error
}

func (e *MalformedExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid JSON: %v", e.Err)
	}
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *MalformedExportError) Unwrap() error {
	return e.Err
}

type exportDocument struct {
	Entries *[]entities.Entry `json:"entries"`
}

// Parser parses Day One metadata files
type Parser struct {
	logger zerolog.Logger
}

func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// FindExportFiles lists the metadata files directly under the export root, sorted by name.
func FindExportFiles(exportDir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(exportDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExportFiles, exportDir)
	}
	sort.Strings(files)
	return files, nil
}

// ParseFile reads a single metadata file.
func (p *Parser) ParseFile(path string) ([]entities.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("JSON file not readable")
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := p.Parse(f)
	if err != nil {
		var malformed *MalformedExportError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		p.logger.Error().Err(err).Str("path", path).Msg("failed to parse export")
		return nil, err
	}

	p.logger.Info().Int("entries", len(entries)).Str("path", path).Msg("parsed export file")
	return entries, nil
}

// Parse decodes export metadata from r. Missing per-entry fields default to
// empty values so callers never see nil slices.
func (p *Parser) Parse(r io.Reader) ([]entities.Entry, error) {
	var doc exportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &MalformedExportError{Err: err}
	}
	if doc.Entries == nil {
		return nil, ErrMissingEntries
	}

	entries := *doc.Entries
	for i := range entries {
		normalize(&entries[i])
	}
	return entries, nil
}

// ParseFiles parses every file in order and concatenates their entries.
// The first failure aborts the whole read.
func (p *Parser) ParseFiles(paths []string) ([]entities.Entry, error) {
	all := make([]entities.Entry, 0)
	for _, path := range paths {
		entries, err := p.ParseFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

func normalize(e *entities.Entry) {
	if e.Photos == nil {
		e.Photos = []entities.MediaReference{}
	}
	if e.Videos == nil {
		e.Videos = []entities.MediaReference{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
}
