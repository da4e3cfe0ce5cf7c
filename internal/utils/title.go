package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the longest title produced by ExtractTitle, in runes.
	MaxTitleLength = 50
	// UntitledNote is used when text has no usable first line.
	UntitledNote = "Untitled Note"
)

var (
	// Whitespace inside a tag would end the hashtag early
	tagWhitespace = regexp.MustCompile(`\s+`)
)

// ExtractTitle returns the first line of text, truncated to MaxTitleLength
// runes with a trailing "...".
func ExtractTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return UntitledNote
	}

	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return UntitledNote
	}

	if utf8.RuneCountInString(line) > MaxTitleLength {
		runes := []rune(line)
		line = string(runes[:MaxTitleLength-3]) + "..."
	}
	return line
}

// Hashtag turns a journal tag into a single Notes hashtag ("weekly review" → "#weekly-review").
// Returns "" when nothing usable is left.
func Hashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimLeft(tag, "#")
	tag = tagWhitespace.ReplaceAllString(strings.TrimSpace(tag), "-")
	if tag == "" {
		return ""
	}
	return "#" + tag
}

// Hashtags joins the usable tags of tags with single spaces.
func Hashtags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		if h := Hashtag(tag); h != "" {
			parts = append(parts, h)
		}
	}
	return strings.Join(parts, " ")
}
