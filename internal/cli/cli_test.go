package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/journal-importer/internal/config"
)

const exportJSON = `{
  "entries": [
    {
      "uuid": "E1",
      "text": "Beach day\nSand everywhere ![](dayone-moment://ABCDEF0123456789ABCDEF0123456789)",
      "creationDate": "2024-01-15T10:30:00",
      "photos": [
        {"identifier": "ABCDEF0123456789ABCDEF0123456789", "md5": "", "type": "jpeg"},
        {"identifier": "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", "type": "jpeg"}
      ],
      "tags": ["summer"]
    },
    {
      "uuid": "E2",
      "text": "Beach day",
      "creationDate": "2024-01-16T08:00:00"
    }
  ]
}`

type scriptRecorder struct {
	scripts []string
}

func (s *scriptRecorder) Run(_ context.Context, script string) (string, error) {
	s.scripts = append(s.scripts, script)
	return "true", nil
}

func newExport(t *testing.T, jsonFiles ...string) string {
	t.Helper()
	dir := t.TempDir()
	if len(jsonFiles) == 0 {
		jsonFiles = []string{"Journal.json"}
	}
	for _, name := range jsonFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(exportJSON), 0644))
	}
	photos := filepath.Join(dir, "photos")
	require.NoError(t, os.MkdirAll(photos, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(photos, "ABCDEF0123456789ABCDEF0123456789.jpeg"), []byte("img"), 0644))
	return dir
}

func newTestImport(t *testing.T, exportDir string) (*ImportCommand, *scriptRecorder, *bytes.Buffer) {
	t.Helper()
	recorder := &scriptRecorder{}
	out := &bytes.Buffer{}

	cmd := NewImportCommand(config.NewConfig())
	cmd.ExportDir = exportDir
	cmd.NoInteractive = true
	cmd.NotesDBPath = filepath.Join(t.TempDir(), "missing.sqlite")
	cmd.In = strings.NewReader("")
	cmd.Out = out
	cmd.LogOutput = &bytes.Buffer{}
	cmd.Executor = recorder
	return cmd, recorder, out
}

func TestImportCommand_Run(t *testing.T) {
	dir := newExport(t)
	cmd, recorder, out := newTestImport(t, dir)
	cmd.Folder = "Journal"
	cmd.Verbose = true

	require.NoError(t, cmd.Run(context.Background()))

	// process check, folder, two notes
	require.Len(t, recorder.scripts, 4)
	first := recorder.scripts[2]
	assert.Contains(t, first, `set targetFolder to folder "Journal"`)
	assert.Contains(t, first, "January 15, 2024 at 10:30 AM")
	assert.Contains(t, first, "ABCDEF0123456789ABCDEF0123456789.jpeg")
	assert.Contains(t, first, "#summer")
	assert.NotContains(t, first, "dayone-moment")

	output := out.String()
	assert.Contains(t, output, "Successful imports: 2")
	assert.Contains(t, output, "Missing media files: 1")
	assert.Contains(t, output, "Photo: FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF")
	assert.Contains(t, output, "Import completed!")
}

func TestImportCommand_DryRunSkipsExecutor(t *testing.T) {
	dir := newExport(t)
	cmd, recorder, out := newTestImport(t, dir)
	cmd.DryRun = true

	require.NoError(t, cmd.Run(context.Background()))

	assert.Empty(t, recorder.scripts)
	assert.Contains(t, out.String(), "DRY RUN MODE")
	assert.Contains(t, out.String(), "Successful imports: 2")
}

func TestImportCommand_Limit(t *testing.T) {
	dir := newExport(t)
	cmd, recorder, out := newTestImport(t, dir)
	cmd.Limit = 1

	require.NoError(t, cmd.Run(context.Background()))

	assert.Len(t, recorder.scripts, 2)
	assert.Contains(t, out.String(), "Total entries processed: 1")
}

func TestImportCommand_Report(t *testing.T) {
	dir := newExport(t)
	cmd, _, out := newTestImport(t, dir)
	cmd.ReportDir = filepath.Join(t.TempDir(), "reports")

	require.NoError(t, cmd.Run(context.Background()))

	reports, err := filepath.Glob(filepath.Join(cmd.ReportDir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Contains(t, out.String(), "Run report:")
}

func TestImportCommand_Cancelled(t *testing.T) {
	dir := newExport(t)
	cmd, recorder, out := newTestImport(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cmd.Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Len(t, recorder.scripts, 1)
	assert.Contains(t, out.String(), "entries skipped: 2")
}

func TestImportCommand_MissingExportDir(t *testing.T) {
	cmd, _, _ := newTestImport(t, filepath.Join(t.TempDir(), "nope"))

	err := cmd.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export directory not found")
}

func TestImportCommand_InvalidLimit(t *testing.T) {
	cmd, recorder, _ := newTestImport(t, newExport(t))
	cmd.Limit = -3

	err := cmd.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
	assert.Empty(t, recorder.scripts)
}

func TestImportCommand_NoExportFiles(t *testing.T) {
	cmd, _, _ := newTestImport(t, t.TempDir())

	assert.Error(t, cmd.Run(context.Background()))
}

func TestImportCommand_ExplicitFiles(t *testing.T) {
	dir := newExport(t, "A.json", "B.json")
	cmd, recorder, _ := newTestImport(t, dir)
	cmd.Files = []string{"B.json"}

	require.NoError(t, cmd.Run(context.Background()))
	assert.Len(t, recorder.scripts, 3)

	cmd.Files = []string{"C.json"}
	assert.Error(t, cmd.Run(context.Background()))
}

func TestImportCommand_InteractiveSelection(t *testing.T) {
	dir := newExport(t, "A.json", "B.json")
	cmd, recorder, out := newTestImport(t, dir)
	cmd.NoInteractive = false
	cmd.In = strings.NewReader("2\n\nDiary\n")

	require.NoError(t, cmd.Run(context.Background()))

	assert.Equal(t, "Diary", cmd.Folder)
	// process check, folder, two notes from B.json only
	assert.Len(t, recorder.scripts, 4)
	assert.Contains(t, out.String(), "Selected 1 file(s)")
}

func TestImportCommand_DuplicateTitlesNumbered(t *testing.T) {
	dir := newExport(t)
	cmd, _, _ := newTestImport(t, dir)
	logs := &bytes.Buffer{}
	cmd.LogOutput = logs

	require.NoError(t, cmd.Run(context.Background()))

	assert.Contains(t, logs.String(), "Beach day 2")
}

func TestPrompter_SelectFiles(t *testing.T) {
	files := []string{"/x/A.json", "/x/B.json", "/x/C.json"}

	t.Run("toggle and confirm", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("1 3\n1\n\n"), &out)

		selected, err := p.SelectFiles(files)
		require.NoError(t, err)
		assert.Equal(t, []string{"/x/C.json"}, selected)
	})

	t.Run("empty selection is rejected", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("\n2\n\n"), &out)

		selected, err := p.SelectFiles(files)
		require.NoError(t, err)
		assert.Equal(t, []string{"/x/B.json"}, selected)
		assert.Contains(t, out.String(), "No files selected!")
	})

	t.Run("invalid numbers ignored", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("9 abc 2\n\n"), &out)

		selected, err := p.SelectFiles(files)
		require.NoError(t, err)
		assert.Equal(t, []string{"/x/B.json"}, selected)
	})

	t.Run("end of input cancels", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})

		_, err := p.SelectFiles(files)
		assert.ErrorIs(t, err, ErrSelectionCancelled)
	})
}

func TestPrompter_AskFolder(t *testing.T) {
	p := NewPrompter(strings.NewReader("  Day One  \n"), &bytes.Buffer{})

	folder, err := p.AskFolder()
	require.NoError(t, err)
	assert.Equal(t, "Day One", folder)
}

func TestCheckMediaCommand_Run(t *testing.T) {
	dir := newExport(t)
	var out bytes.Buffer
	cmd := NewCheckMediaCommand(config.NewConfig())
	cmd.ExportDir = dir
	cmd.Out = &out
	cmd.LogOutput = &bytes.Buffer{}

	require.NoError(t, cmd.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Entries: 2")
	assert.Contains(t, output, "Photos resolved: 1/2")
	assert.Contains(t, output, "Videos resolved: 0/0")
	assert.Contains(t, output, "Photo: FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF (entry E1)")
	assert.Contains(t, output, "Videos: folder not found")
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand(config.NewConfig(), "test")

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"import", "check-media"}, names)
}
