package importers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrlokans/journal-importer/internal/entities"
)

// EntryReader loads journal entries from export metadata files.
type EntryReader interface {
	ParseFiles(paths []string) ([]entities.Entry, error)
}

// Publisher creates notes. It is satisfied by *notes.Publisher.
type Publisher interface {
	CheckRunning(ctx context.Context) (string, error)
	EnsureFolder(ctx context.Context) error
	Publish(ctx context.Context, note entities.ResolvedNote) (string, error)
}

// Options tunes a run.
type Options struct {
	// Limit caps the number of entries imported; 0 means no limit.
	Limit int
}

// ProgressFunc is called before each entry is processed; index is 1-based.
type ProgressFunc func(index, total int, entry entities.Entry)

// Importer runs the whole import: parse → build → publish, one entry at a time.
type Importer struct {
	reader    EntryReader
	builder   *Builder
	publisher Publisher
	opts      Options
	logger    zerolog.Logger
	progress  ProgressFunc
}

func NewImporter(reader EntryReader, builder *Builder, publisher Publisher, opts Options, logger zerolog.Logger) *Importer {
	return &Importer{
		reader:    reader,
		builder:   builder,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// OnProgress registers a callback invoked before each entry.
func (i *Importer) OnProgress(fn ProgressFunc) {
	i.progress = fn
}

// Run imports every entry of files. Preflight and parse failures abort the run
// and are returned; per-entry failures are only counted. When ctx is cancelled
// the remaining entries are counted as skipped and stats are returned without error.
func (i *Importer) Run(ctx context.Context, files []string) (entities.ImportStats, error) {
	stats := entities.ImportStats{
		RunID:        uuid.NewString(),
		MissingMedia: []entities.MissingMedia{},
		StartedAt:    time.Now(),
	}

	status, err := i.publisher.CheckRunning(ctx)
	if err != nil {
		return i.finish(stats), fmt.Errorf("apple notes is not available: %w", err)
	}
	i.logger.Debug().Str("status", status).Msg("notes preflight passed")

	entries, err := i.reader.ParseFiles(files)
	if err != nil {
		return i.finish(stats), fmt.Errorf("failed to read journal export: %w", err)
	}

	if i.opts.Limit > 0 && len(entries) > i.opts.Limit {
		i.logger.Info().Int("limit", i.opts.Limit).Int("available", len(entries)).Msg("limiting import")
		entries = entries[:i.opts.Limit]
	}
	stats.TotalEntries = len(entries)

	if err := i.publisher.EnsureFolder(ctx); err != nil {
		i.logger.Warn().Err(err).Msg("continuing without folder check")
	}

	for n, entry := range entries {
		if ctx.Err() != nil {
			stats.Cancelled = true
			stats.Skipped = len(entries) - n
			i.logger.Warn().Int("skipped", stats.Skipped).Msg("import cancelled")
			break
		}

		i.logger.Info().Msgf("Processing entry %d/%d", n+1, len(entries))
		if i.progress != nil {
			i.progress(n+1, len(entries), entry)
		}

		missing, err := i.importEntry(ctx, entry)
		stats.MissingMedia = append(stats.MissingMedia, missing...)
		if err != nil {
			stats.Failed++
			i.logger.Error().Err(err).Str("entry", entry.UUID).Msg("error importing entry")
			continue
		}
		stats.Successful++
	}

	return i.finish(stats), nil
}

func (i *Importer) importEntry(ctx context.Context, entry entities.Entry) (missing []entities.MissingMedia, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while importing entry: %v", r)
		}
	}()

	note, missing := i.builder.Build(entry)
	if _, err := i.publisher.Publish(ctx, note); err != nil {
		return missing, err
	}
	return missing, nil
}

func (i *Importer) finish(stats entities.ImportStats) entities.ImportStats {
	stats.Duration = time.Since(stats.StartedAt)
	return stats
}
