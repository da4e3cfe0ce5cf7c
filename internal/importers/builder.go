package importers

import (
	"github.com/mrlokans/journal-importer/internal/entities"
	"github.com/mrlokans/journal-importer/internal/media"
	"github.com/mrlokans/journal-importer/internal/notes"
	"github.com/mrlokans/journal-importer/internal/utils"
)

// MediaResolver finds the attachment files of an entry.
type MediaResolver interface {
	ResolveEntry(entry entities.Entry) media.ResolvedMedia
}

// TextRenderer turns entry text into note markup.
type TextRenderer interface {
	Render(text string) string
}

// Builder turns a journal entry into a note ready for publishing.
type Builder struct {
	resolver MediaResolver
	renderer TextRenderer
}

func NewBuilder(resolver MediaResolver, renderer TextRenderer) *Builder {
	return &Builder{resolver: resolver, renderer: renderer}
}

// Build resolves media, prefixes the creation date and renders the body.
// The title comes from the entry text alone, never from the date header.
func (b *Builder) Build(entry entities.Entry) (entities.ResolvedNote, []entities.MissingMedia) {
	resolved := b.resolver.ResolveEntry(entry)

	note := entities.ResolvedNote{
		EntryUUID: entry.UUID,
		Title:     utils.ExtractTitle(entry.Text),
		Photos:    resolved.Photos,
		Videos:    resolved.Videos,
		Tags:      entry.Tags,
		Date:      displayDate(entry.CreationDate),
	}

	text := entry.Text
	if note.Date != "" {
		text = notes.DateHeader(note.Date) + "\n\n" + text
	}
	note.Body = b.renderer.Render(text)

	return note, resolved.Missing
}

// displayDate falls back to the raw value when it cannot be parsed.
func displayDate(raw string) string {
	if raw == "" {
		return ""
	}
	formatted, err := notes.FormatDisplayDate(raw)
	if err != nil {
		return raw
	}
	return formatted
}
