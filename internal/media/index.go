package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IdentifierLength is the length of a Day One media identifier in hex chars.
const IdentifierLength = 32

// Index is the file listing of one media directory.
type Index struct {
	dir          string
	exists       bool
	byIdentifier map[string]string
	files        []string
}

// NewIndex enumerates dir (non-recursively). A directory that does not exist
// yields an empty index and no error; check Exists to tell the two apart.
func NewIndex(dir string) (*Index, error) {
	idx := &Index{
		dir:          dir,
		byIdentifier: make(map[string]string),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx, nil
		}
		return idx, fmt.Errorf("failed to read media directory %s: %w", dir, err)
	}
	idx.exists = true

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		idx.files = append(idx.files, path)
		if id, ok := IdentifierFromFilename(entry.Name()); ok {
			idx.byIdentifier[id] = path
		}
	}

	return idx, nil
}

// IdentifierFromFilename returns the uppercased stem of name when the stem is
// exactly IdentifierLength hex characters.
func IdentifierFromFilename(name string) (string, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if len(stem) != IdentifierLength || !isHex(stem) {
		return "", false
	}
	return strings.ToUpper(stem), true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Symlinks count when they point at a regular file.
func isRegularFile(entry fs.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Lookup returns the file registered for identifier (case-insensitive).
func (idx *Index) Lookup(identifier string) (string, bool) {
	path, ok := idx.byIdentifier[strings.ToUpper(identifier)]
	return path, ok
}

// Files returns every candidate file in enumeration order.
func (idx *Index) Files() []string {
	return idx.files
}

func (idx *Index) Dir() string {
	return idx.dir
}

func (idx *Index) Exists() bool {
	return idx.exists
}

// IdentifierCount is the number of files reachable by exact identifier lookup.
func (idx *Index) IdentifierCount() int {
	return len(idx.byIdentifier)
}
