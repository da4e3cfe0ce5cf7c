// Package notes creates Apple Notes entries through AppleScript.
package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrlokans/journal-importer/internal/entities"
	"github.com/mrlokans/journal-importer/internal/utils"
)

// Config controls where and how notes are created.
type Config struct {
	Folder string // empty means the default Notes folder
	DryRun bool
}

// Publisher creates one note per resolved entry.
type Publisher struct {
	cfg      Config
	executor Executor
	titles   *TitleRegistry
	logger   zerolog.Logger

	folderChecked bool
	folderErr     error
}

// NewPublisher wires a publisher. In dry-run mode executor is replaced by a
// DryRunExecutor. A nil registry starts empty.
func NewPublisher(cfg Config, executor Executor, titles *TitleRegistry, logger zerolog.Logger) *Publisher {
	if cfg.DryRun {
		executor = NewDryRunExecutor(logger)
	}
	if titles == nil {
		titles = NewTitleRegistry()
	}
	return &Publisher{
		cfg:      cfg,
		executor: executor,
		titles:   titles,
		logger:   logger,
	}
}

// Titles exposes the run's title registry.
func (p *Publisher) Titles() *TitleRegistry {
	return p.titles
}

// CheckRunning makes sure Notes is running, launching it when needed.
// The returned message tells whether Notes was launched.
func (p *Publisher) CheckRunning(ctx context.Context) (string, error) {
	if p.cfg.DryRun {
		return DryRunOutput, nil
	}

	output, err := p.executor.Run(ctx, processCheckScript)
	if err != nil {
		return "", fmt.Errorf("could not check Notes app status: %w", err)
	}
	if isTrue(output) {
		return "Notes app is running", nil
	}

	p.logger.Info().Msg("Apple Notes is not running, launching...")

	output, err = p.executor.Run(ctx, launchScript)
	if err != nil {
		return "", fmt.Errorf("failed to launch Notes app: %w", err)
	}
	if !isTrue(output) {
		return "", ErrNotesUnavailable
	}
	return "Notes app launched", nil
}

// EnsureFolder creates the configured folder if it does not exist yet.
// It is a no-op without a folder and runs at most once per publisher; later
// calls return the result of the first check.
func (p *Publisher) EnsureFolder(ctx context.Context) error {
	if p.cfg.Folder == "" {
		return nil
	}
	if p.folderChecked {
		return p.folderErr
	}
	p.folderChecked = true

	output, err := p.executor.Run(ctx, ensureFolderScript(p.cfg.Folder))
	if err == nil && strings.EqualFold(output, "false") {
		err = fmt.Errorf("notes refused to create the folder")
	}
	if err != nil {
		p.logger.Warn().Err(err).Str("folder", p.cfg.Folder).Msg("could not ensure folder exists")
		p.folderErr = fmt.Errorf("failed to ensure folder %q: %w", p.cfg.Folder, err)
	}
	return p.folderErr
}

// Publish creates a note for note and returns the unique title it was tracked under.
func (p *Publisher) Publish(ctx context.Context, note entities.ResolvedNote) (string, error) {
	title := p.titles.Claim(note.Title)

	// a missing folder surfaces as a script error below
	if err := p.EnsureFolder(ctx); err != nil {
		p.logger.Debug().Err(err).Str("title", title).Msg("creating note without a confirmed folder")
	}

	script := p.Script(note)
	if _, err := p.executor.Run(ctx, script); err != nil {
		p.logger.Error().Err(err).Str("title", title).Str("entry", note.EntryUUID).Msg("failed to create note")
		return title, fmt.Errorf("failed to create note %q: %w", title, err)
	}

	p.logger.Info().Str("title", title).Msg("created note")
	return title, nil
}

// Script builds the AppleScript program that creates note.
func (p *Publisher) Script(note entities.ResolvedNote) string {
	s := noteScript{
		folder:   p.cfg.Folder,
		body:     note.Body,
		hashtags: utils.Hashtags(note.Tags),
	}
	s.attachments = append(s.attachments, p.attachments(note.Photos, "photo")...)
	s.attachments = append(s.attachments, p.attachments(note.Videos, "video")...)
	return s.String()
}

func (p *Publisher) attachments(paths []string, kind string) []attachment {
	var out []attachment
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			p.logger.Warn().Err(err).Str("path", path).Msgf("skipping %s attachment", kind)
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		out = append(out, attachment{path: abs, kind: kind})
	}
	return out
}

func isTrue(output string) bool {
	return strings.EqualFold(strings.TrimSpace(output), "true")
}
