package media

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/journal-importer/internal/entities"
)

const photoID = "ABCDEF0123456789ABCDEF0123456789"

func writeMedia(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func md5Hex(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

func TestIdentifierFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		wantID string
		wantOK bool
	}{
		{name: "uppercase hex stem", file: photoID + ".jpg", wantID: photoID, wantOK: true},
		{name: "lowercase hex stem is uppercased", file: strings.ToLower(photoID) + ".heic", wantID: photoID, wantOK: true},
		{name: "no extension", file: photoID, wantID: photoID, wantOK: true},
		{name: "too short", file: "ABCDEF.jpg"},
		{name: "too long", file: photoID + "0.jpg"},
		{name: "non-hex character", file: "ZBCDEF0123456789ABCDEF0123456789.jpg"},
		{name: "decorated identifier", file: "IMG_" + photoID + ".jpg"},
		{name: "ordinary name", file: "holiday.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := IdentifierFromFilename(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNewIndex(t *testing.T) {
	t.Run("indexes hex stems and keeps every file as candidate", func(t *testing.T) {
		dir := t.TempDir()
		hexPath := writeMedia(t, dir, strings.ToLower(photoID)+".jpg", "a")
		plainPath := writeMedia(t, dir, "holiday.png", "b")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
		writeMedia(t, filepath.Join(dir, "nested"), "deep.jpg", "c")

		idx, err := NewIndex(dir)

		require.NoError(t, err)
		assert.True(t, idx.Exists())
		assert.Equal(t, 1, idx.IdentifierCount())

		got, ok := idx.Lookup(photoID)
		require.True(t, ok)
		assert.Equal(t, hexPath, got)

		_, ok = idx.Lookup("HOLIDAY")
		assert.False(t, ok, "ordinary file names must not enter the identifier index")

		assert.ElementsMatch(t, []string{hexPath, plainPath}, idx.Files())
	})

	t.Run("missing directory yields empty index", func(t *testing.T) {
		idx, err := NewIndex(filepath.Join(t.TempDir(), "photos"))

		require.NoError(t, err)
		assert.False(t, idx.Exists())
		assert.Empty(t, idx.Files())
		assert.Zero(t, idx.IdentifierCount())
	})
}

func TestDigestCache_ReadsOncePerFile(t *testing.T) {
	dir := t.TempDir()
	path := writeMedia(t, dir, "clip.mov", "video bytes")
	cache := NewDigestCache()

	first, err := cache.Digest(path)
	require.NoError(t, err)
	second, err := cache.Digest(path)
	require.NoError(t, err)

	assert.Equal(t, strings.ToUpper(md5Hex("video bytes")), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Reads())
}

func TestDigestCache_RemembersFailures(t *testing.T) {
	cache := NewDigestCache()
	missing := filepath.Join(t.TempDir(), "gone.jpg")

	_, err := cache.Digest(missing)
	require.Error(t, err)
	_, err = cache.Digest(missing)
	require.Error(t, err)

	assert.Equal(t, 1, cache.Reads())
}

func newTestResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	return NewExportResolver(root, zerolog.Nop())
}

func TestResolver_ExactIdentifierDoesNotHash(t *testing.T) {
	root := t.TempDir()
	want := writeMedia(t, filepath.Join(root, PhotosDirName), photoID+".jpg", "pixels")
	r := newTestResolver(t, root)

	got, ok := r.ResolvePhoto(entities.MediaReference{
		Identifier: strings.ToLower(photoID),
		MD5:        md5Hex("pixels"),
	})

	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Zero(t, r.Digests().Reads(), "identifier hits must not read file contents")
}

func TestResolver_FilenameSubstringFirstMatchWins(t *testing.T) {
	root := t.TempDir()
	photos := filepath.Join(root, PhotosDirName)
	first := writeMedia(t, photos, "a_abc123_edited.jpg", "1")
	writeMedia(t, photos, "b_ABC123.jpg", "2")
	r := newTestResolver(t, root)

	got, ok := r.ResolvePhoto(entities.MediaReference{Identifier: "ABC123"})

	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Zero(t, r.Digests().Reads())
}

func TestResolver_DigestFallback(t *testing.T) {
	root := t.TempDir()
	videos := filepath.Join(root, VideosDirName)
	writeMedia(t, videos, "other.mov", "something else")
	want := writeMedia(t, videos, "renamed.mov", "the real clip")
	r := newTestResolver(t, root)

	ref := entities.MediaReference{Identifier: "ZZZZ", MD5: md5Hex("the real clip")}
	got, ok := r.ResolveVideo(ref)
	require.True(t, ok)
	assert.Equal(t, want, got)
	readsAfterFirst := r.Digests().Reads()
	assert.Equal(t, 2, readsAfterFirst)

	got, ok = r.ResolveVideo(ref)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, readsAfterFirst, r.Digests().Reads(), "second lookup must be served from cache")
}

func TestResolver_DigestFallbackSkipsUnreadableCandidate(t *testing.T) {
	root := t.TempDir()
	videos := filepath.Join(root, VideosDirName)
	gone := writeMedia(t, videos, "a_gone.mov", "deleted after indexing")
	want := writeMedia(t, videos, "b_match.mov", "the real clip")
	r := newTestResolver(t, root)
	require.NoError(t, os.Remove(gone))

	ref := entities.MediaReference{Identifier: "ZZZZ", MD5: md5Hex("the real clip")}
	got, ok := r.ResolveVideo(ref)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, r.Digests().Reads())

	_, err := r.Digests().Digest(gone)
	assert.Error(t, err)
	assert.Equal(t, 2, r.Digests().Reads())
}

func TestResolver_PoolsAreSeparate(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, filepath.Join(root, VideosDirName), photoID+".mov", "clip")
	r := newTestResolver(t, root)

	_, ok := r.ResolvePhoto(entities.MediaReference{Identifier: photoID})
	assert.False(t, ok)

	_, ok = r.Resolve(entities.MediaKindVideo, entities.MediaReference{Identifier: photoID})
	assert.True(t, ok)
}

func TestResolver_NotFound(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, filepath.Join(root, PhotosDirName), "holiday.png", "x")
	r := newTestResolver(t, root)

	tests := []struct {
		name string
		ref  entities.MediaReference
	}{
		{name: "empty reference", ref: entities.MediaReference{}},
		{name: "unknown identifier without md5", ref: entities.MediaReference{Identifier: "FFFF"}},
		{name: "md5 that matches nothing", ref: entities.MediaReference{MD5: md5Hex("nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				path, ok := r.ResolvePhoto(tt.ref)
				assert.False(t, ok)
				assert.Empty(t, path)
			})
		})
	}
}

func TestResolver_MissingDirectories(t *testing.T) {
	r := newTestResolver(t, t.TempDir())

	assert.False(t, r.Photos().Exists())
	assert.False(t, r.Videos().Exists())
	_, ok := r.ResolvePhoto(entities.MediaReference{Identifier: photoID})
	assert.False(t, ok)
}

func TestResolver_ResolveEntry(t *testing.T) {
	root := t.TempDir()
	photo := writeMedia(t, filepath.Join(root, PhotosDirName), photoID+".jpg", "p")
	video := writeMedia(t, filepath.Join(root, VideosDirName), "clip_DEADBEEF.mp4", "v")
	r := newTestResolver(t, root)

	entry := entities.Entry{
		UUID: "ENTRY1",
		Photos: []entities.MediaReference{
			{Identifier: photoID},
			{Identifier: "MISSING1"},
			{},
		},
		Videos: []entities.MediaReference{
			{Identifier: "deadbeef"},
			{Identifier: "MISSING2"},
		},
	}

	result := r.ResolveEntry(entry)

	assert.Equal(t, []string{photo}, result.Photos)
	assert.Equal(t, []string{video}, result.Videos)
	require.Len(t, result.Missing, 3)
	assert.Equal(t, "Photo: MISSING1", result.Missing[0].String())
	assert.Equal(t, "Photo: unknown", result.Missing[1].String())
	assert.Equal(t, "Video: MISSING2", result.Missing[2].String())
	assert.Equal(t, "ENTRY1", result.Missing[2].EntryUUID)
}

func TestResolver_EndToEnd(t *testing.T) {
	root := t.TempDir()
	content := "jpeg bytes for end to end"
	want := writeMedia(t, filepath.Join(root, PhotosDirName), "ABCDEF0123456789ABCDEF0123456789.jpg", content)
	r := newTestResolver(t, root)

	t.Run("case-insensitive identifier", func(t *testing.T) {
		got, ok := r.ResolvePhoto(entities.MediaReference{Identifier: "abcdef0123456789abcdef0123456789"})
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("hash fallback", func(t *testing.T) {
		got, ok := r.ResolvePhoto(entities.MediaReference{Identifier: "ZZZZ", MD5: md5Hex(content)})
		require.True(t, ok)
		assert.Equal(t, want, got)
	})
}

func TestResolver_Stats(t *testing.T) {
	root := t.TempDir()
	writeMedia(t, filepath.Join(root, PhotosDirName), photoID+".jpg", "p")
	writeMedia(t, filepath.Join(root, PhotosDirName), "IMG_0001.jpg", "q")
	r := newTestResolver(t, root)

	photos, videos := r.Stats()
	assert.True(t, photos.Exists)
	assert.Equal(t, 2, photos.Files)
	assert.Equal(t, 1, photos.Identifiers)
	assert.False(t, videos.Exists)
	assert.Zero(t, videos.Files)
}
