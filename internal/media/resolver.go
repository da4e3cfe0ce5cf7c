package media

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrlokans/journal-importer/internal/entities"
)

// Default sub-directories of an export root.
const (
	PhotosDirName = "photos"
	VideosDirName = "videos"
)

// Resolver matches media references against the photo and video pools of
// one export.
type Resolver struct {
	photos  *Index
	videos  *Index
	digests *DigestCache
	chain   []Strategy
	logger  zerolog.Logger
}

// ResolvedMedia is the outcome of resolving all references of one entry.
type ResolvedMedia struct {
	Photos  []string
	Videos  []string
	Missing []entities.MissingMedia
}

// NewResolver indexes photosDir and videosDir. Unreadable or missing
// directories are logged and treated as empty pools.
func NewResolver(photosDir, videosDir string, logger zerolog.Logger) *Resolver {
	photos := buildIndex(photosDir, entities.MediaKindPhoto, logger)
	videos := buildIndex(videosDir, entities.MediaKindVideo, logger)
	return NewResolverFromIndexes(photos, videos, NewDigestCache(), logger)
}

// NewExportResolver indexes the standard photos/ and videos/ folders of exportDir.
func NewExportResolver(exportDir string, logger zerolog.Logger) *Resolver {
	return NewResolver(
		filepath.Join(exportDir, PhotosDirName),
		filepath.Join(exportDir, VideosDirName),
		logger,
	)
}

// NewResolverFromIndexes wires prebuilt indexes with the default chain.
func NewResolverFromIndexes(photos, videos *Index, digests *DigestCache, logger zerolog.Logger) *Resolver {
	return &Resolver{
		photos:  photos,
		videos:  videos,
		digests: digests,
		chain:   DefaultChain(digests, logger),
		logger:  logger,
	}
}

func buildIndex(dir string, kind entities.MediaKind, logger zerolog.Logger) *Index {
	idx, err := NewIndex(dir)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("kind", string(kind)).Msg("media directory not readable")
	case !idx.Exists():
		logger.Warn().Str("dir", dir).Msgf("%ss directory not found", kind)
	default:
		logger.Info().
			Int("identifiers", idx.IdentifierCount()).
			Int("files", len(idx.Files())).
			Msgf("indexed %s directory", kind)
	}
	return idx
}

// ResolvePhoto returns the photo file for ref.
func (r *Resolver) ResolvePhoto(ref entities.MediaReference) (string, bool) {
	return r.resolve(ref, r.photos)
}

// ResolveVideo returns the video file for ref.
func (r *Resolver) ResolveVideo(ref entities.MediaReference) (string, bool) {
	return r.resolve(ref, r.videos)
}

// Resolve dispatches on kind.
func (r *Resolver) Resolve(kind entities.MediaKind, ref entities.MediaReference) (string, bool) {
	if kind == entities.MediaKindVideo {
		return r.ResolveVideo(ref)
	}
	return r.ResolvePhoto(ref)
}

func (r *Resolver) resolve(ref entities.MediaReference, idx *Index) (string, bool) {
	for _, strategy := range r.chain {
		if path, ok := strategy.Match(ref, idx); ok {
			r.logger.Debug().
				Str("identifier", ref.Identifier).
				Str("strategy", strategy.Name()).
				Str("path", path).
				Msg("resolved media")
			return path, true
		}
	}
	return "", false
}

// ResolveEntry resolves every reference of entry, keeping reference order.
// Unresolved references are returned in Missing and logged.
func (r *Resolver) ResolveEntry(entry entities.Entry) ResolvedMedia {
	result := ResolvedMedia{
		Photos: make([]string, 0, len(entry.Photos)),
		Videos: make([]string, 0, len(entry.Videos)),
	}

	for _, ref := range entry.Photos {
		if path, ok := r.ResolvePhoto(ref); ok {
			result.Photos = append(result.Photos, path)
			continue
		}
		result.Missing = append(result.Missing, r.missing(entities.MediaKindPhoto, ref, entry.UUID))
	}

	for _, ref := range entry.Videos {
		if path, ok := r.ResolveVideo(ref); ok {
			result.Videos = append(result.Videos, path)
			continue
		}
		result.Missing = append(result.Missing, r.missing(entities.MediaKindVideo, ref, entry.UUID))
	}

	return result
}

func (r *Resolver) missing(kind entities.MediaKind, ref entities.MediaReference, entryUUID string) entities.MissingMedia {
	m := entities.NewMissingMedia(kind, ref, entryUUID)
	r.logger.Warn().Str("entry", entryUUID).Msgf("could not resolve %s", m)
	return m
}

// Digests exposes the shared digest cache.
func (r *Resolver) Digests() *DigestCache {
	return r.digests
}

func (r *Resolver) Photos() *Index { return r.photos }

func (r *Resolver) Videos() *Index { return r.videos }

// PoolStats describes one indexed media folder.
type PoolStats struct {
	Dir         string
	Exists      bool
	Files       int
	Identifiers int
}

// Stats reports what was indexed for the photo and video pools.
func (r *Resolver) Stats() (photos, videos PoolStats) {
	return poolStats(r.photos), poolStats(r.videos)
}

func poolStats(idx *Index) PoolStats {
	return PoolStats{
		Dir:         idx.Dir(),
		Exists:      idx.Exists(),
		Files:       len(idx.Files()),
		Identifiers: idx.IdentifierCount(),
	}
}
