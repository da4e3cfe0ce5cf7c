package media

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrlokans/journal-importer/internal/entities"
)

// Strategy is one step of the resolution chain.
type Strategy interface {
	Name() string
	// Match returns the matching file from idx, or false when this strategy
	// cannot resolve ref.
	Match(ref entities.MediaReference, idx *Index) (string, bool)
}

// IdentifierLookup resolves references whose identifier is a file stem.
type IdentifierLookup struct{}

func (IdentifierLookup) Name() string { return "identifier" }

func (IdentifierLookup) Match(ref entities.MediaReference, idx *Index) (string, bool) {
	if ref.Identifier == "" {
		return "", false
	}
	return idx.Lookup(ref.Identifier)
}

// FilenameScan resolves references whose identifier appears anywhere in a
// file name, e.g. "IMG_<id>-edited.jpg". The first file in enumeration order
// wins even when several contain the identifier.
type FilenameScan struct{}

func (FilenameScan) Name() string { return "filename" }

func (FilenameScan) Match(ref entities.MediaReference, idx *Index) (string, bool) {
	if ref.Identifier == "" {
		return "", false
	}
	needle := strings.ToUpper(ref.Identifier)
	for _, path := range idx.Files() {
		if strings.Contains(strings.ToUpper(filepath.Base(path)), needle) {
			return path, true
		}
	}
	return "", false
}

// DigestScan compares the reference's md5 against file contents. It is the
// slow path; digests come from a shared DigestCache.
type DigestScan struct {
	Cache  *DigestCache
	Logger zerolog.Logger
}

func (DigestScan) Name() string { return "md5" }

func (s DigestScan) Match(ref entities.MediaReference, idx *Index) (string, bool) {
	if ref.MD5 == "" {
		return "", false
	}
	want := strings.ToUpper(ref.MD5)
	s.Logger.Debug().Str("md5", abbreviate(want)).Msg("falling back to md5 lookup")

	for _, path := range idx.Files() {
		sum, err := s.Cache.Digest(path)
		if err != nil {
			s.Logger.Debug().Err(err).Str("path", path).Msg("could not calculate md5")
			continue
		}
		if sum == want {
			return path, true
		}
	}
	return "", false
}

// DefaultChain returns the identifier → filename → md5 chain.
func DefaultChain(cache *DigestCache, logger zerolog.Logger) []Strategy {
	return []Strategy{
		IdentifierLookup{},
		FilenameScan{},
		DigestScan{Cache: cache, Logger: logger},
	}
}

func abbreviate(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}
