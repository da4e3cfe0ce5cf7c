package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrlokans/journal-importer/internal/audit"
	"github.com/mrlokans/journal-importer/internal/config"
	"github.com/mrlokans/journal-importer/internal/dayone"
	"github.com/mrlokans/journal-importer/internal/entities"
	"github.com/mrlokans/journal-importer/internal/importers"
	"github.com/mrlokans/journal-importer/internal/logging"
	"github.com/mrlokans/journal-importer/internal/markdown"
	"github.com/mrlokans/journal-importer/internal/media"
	"github.com/mrlokans/journal-importer/internal/notes"
	"github.com/mrlokans/journal-importer/internal/utils"
)

// ErrInterrupted is returned when an import was stopped by a signal.
var ErrInterrupted = errors.New("import interrupted")

// ImportCommand imports a Day One export into Apple Notes
type ImportCommand struct {
	ExportDir     string
	Files         []string
	Folder        string
	DryRun        bool
	Verbose       bool
	NoInteractive bool
	Limit         int
	ReportDir     string
	NotesDBPath   string
	PhotosDir     string
	VideosDir     string
	EmbedScheme   string
	ScriptTimeout time.Duration

	In        io.Reader
	Out       io.Writer
	LogOutput io.Writer
	Executor  notes.Executor // nil runs osascript

	prompter *Prompter
}

// NewImportCommand creates an ImportCommand seeded from cfg
func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{
		Folder:        cfg.Notes.Folder,
		DryRun:        cfg.Import.DryRun,
		Verbose:       cfg.Log.Verbose,
		Limit:         cfg.Import.Limit,
		ReportDir:     cfg.Report.Dir,
		NotesDBPath:   cfg.Notes.StoreDBPath,
		PhotosDir:     cfg.Media.PhotosDir,
		VideosDir:     cfg.Media.VideosDir,
		EmbedScheme:   cfg.Import.EmbedScheme,
		ScriptTimeout: cfg.Notes.ScriptTimeout,
		In:            os.Stdin,
		Out:           os.Stdout,
		LogOutput:     os.Stderr,
	}
}

// Command builds the cobra command bound to cmd's fields
func (cmd *ImportCommand) Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <export-dir>",
		Short: "Import Day One journal entries into Apple Notes",
		Long: `import reads the JSON metadata of a Day One export, matches every photo and
video reference against the export's photos/ and videos/ folders, and creates
one Apple Notes note per entry.

Examples:
  # Interactive file and folder selection
  journal-importer import ~/Exports/DayOne

  # Import into a specific folder (created if needed)
  journal-importer import ~/Exports/DayOne --folder "Day One Import"

  # Preview without touching Notes
  journal-importer import ~/Exports/DayOne --dry-run --verbose --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cmd.ExportDir = args[0]
			return cmd.Run(c.Context())
		},
	}

	flags := c.Flags()
	flags.StringVarP(&cmd.Folder, "folder", "f", cmd.Folder, "Target folder in Apple Notes (created if it doesn't exist)")
	flags.BoolVar(&cmd.DryRun, "dry-run", cmd.DryRun, "Test run without creating notes")
	flags.BoolVarP(&cmd.Verbose, "verbose", "v", cmd.Verbose, "Enable verbose logging")
	flags.BoolVar(&cmd.NoInteractive, "no-interactive", cmd.NoInteractive, "Skip file selection and folder prompts")
	flags.IntVarP(&cmd.Limit, "limit", "l", cmd.Limit, "Maximum number of entries to import (0 = all)")
	flags.StringVar(&cmd.ReportDir, "report", cmd.ReportDir, "Directory to write a JSON run report to")
	flags.StringVar(&cmd.NotesDBPath, "notes-db", cmd.NotesDBPath, "Path to NoteStore.sqlite used to avoid duplicate titles (auto-detected on macOS)")
	flags.StringArrayVar(&cmd.Files, "file", cmd.Files, "Export JSON file to import, relative to the export dir (repeatable)")

	return c
}

// Run executes the import
func (cmd *ImportCommand) Run(ctx context.Context) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	fmt.Fprintln(cmd.Out, "📓 Day One → Apple Notes Import")
	fmt.Fprintln(cmd.Out, "===============================")

	if cmd.DryRun {
		fmt.Fprintln(cmd.Out, "🔍 DRY RUN MODE - No notes will be created")
	}

	exportDir, err := validateExportDir(cmd.ExportDir)
	if err != nil {
		return err
	}
	cmd.ExportDir = exportDir

	files, err := cmd.selectFiles()
	if err != nil {
		return err
	}

	interactive := !cmd.NoInteractive
	if interactive && cmd.Folder == "" {
		folder, err := cmd.prompt().AskFolder()
		if err != nil && !errors.Is(err, ErrSelectionCancelled) {
			return err
		}
		cmd.Folder = folder
	}

	logger := logging.SetupWithWriter(cmd.Verbose, cmd.LogOutput)

	fmt.Fprintf(cmd.Out, "\n📁 Export: %s\n", cmd.ExportDir)
	if cmd.Folder != "" {
		fmt.Fprintf(cmd.Out, "🗂️  Folder: %s\n", cmd.Folder)
	}
	if cmd.Limit > 0 {
		fmt.Fprintf(cmd.Out, "🔢 Limit: %d entries\n", cmd.Limit)
	}

	resolver := newResolver(cmd.ExportDir, cmd.PhotosDir, cmd.VideosDir, logger)
	printPoolStats(cmd.Out, resolver)

	renderer := markdown.NewRenderer(
		markdown.WithEmbedScheme(cmd.embedScheme()),
		markdown.WithLogger(logger),
	)

	executor := cmd.Executor
	if executor == nil {
		executor = notes.NewOSAScript(cmd.ScriptTimeout)
	}
	publisher := notes.NewPublisher(
		notes.Config{Folder: cmd.Folder, DryRun: cmd.DryRun},
		executor,
		cmd.seedTitles(logger),
		logger,
	)

	importer := importers.NewImporter(
		dayone.NewParser(logger),
		importers.NewBuilder(resolver, renderer),
		publisher,
		importers.Options{Limit: cmd.Limit},
		logger,
	)
	importer.OnProgress(func(index, total int, entry entities.Entry) {
		fmt.Fprintf(cmd.Out, "  → [%d/%d] %s\n", index, total, utils.ExtractTitle(entry.Text))
	})

	fmt.Fprintln(cmd.Out, "\n📥 Importing entries...")
	stats, err := importer.Run(ctx, files)
	if err != nil {
		return err
	}

	importers.Summary(cmd.Out, stats, cmd.Verbose)

	if cmd.ReportDir != "" {
		path, err := audit.NewAuditor(cmd.ReportDir, logger).SaveReport(audit.RunReport{
			ExportDir: cmd.ExportDir,
			Files:     files,
			Folder:    cmd.Folder,
			DryRun:    cmd.DryRun,
			Stats:     stats,
		})
		if err != nil {
			fmt.Fprintf(cmd.Out, "⚠️  Could not write run report: %v\n", err)
		} else {
			fmt.Fprintf(cmd.Out, "📝 Run report: %s\n", path)
		}
	}

	if stats.Cancelled {
		fmt.Fprintln(cmd.Out, "\n⏹️  Import cancelled by user")
		return ErrInterrupted
	}

	fmt.Fprintln(cmd.Out, "\n✅ Import completed!")
	return nil
}

// Validate checks the flag values
func (cmd *ImportCommand) Validate() error {
	return validation.ValidateStruct(cmd,
		validation.Field(&cmd.ExportDir, validation.Required),
		validation.Field(&cmd.Limit, validation.Min(0)),
		validation.Field(&cmd.ScriptTimeout, validation.Min(time.Duration(0))),
	)
}

// prompt shares one buffered reader between questions.
func (cmd *ImportCommand) prompt() *Prompter {
	if cmd.prompter == nil {
		cmd.prompter = NewPrompter(cmd.In, cmd.Out)
	}
	return cmd.prompter
}

func (cmd *ImportCommand) embedScheme() string {
	if cmd.EmbedScheme == "" {
		return markdown.DefaultEmbedScheme
	}
	return cmd.EmbedScheme
}

// selectFiles returns explicit --file values, the only export file, or the
// user's interactive choice.
func (cmd *ImportCommand) selectFiles() ([]string, error) {
	if len(cmd.Files) > 0 {
		files := make([]string, 0, len(cmd.Files))
		for _, f := range cmd.Files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(cmd.ExportDir, f)
			}
			if _, err := os.Stat(f); err != nil {
				return nil, fmt.Errorf("export file not found: %s", f)
			}
			files = append(files, f)
		}
		return files, nil
	}

	files, err := dayone.FindExportFiles(cmd.ExportDir)
	if err != nil {
		return nil, err
	}

	if len(files) == 1 {
		fmt.Fprintf(cmd.Out, "✅ Found 1 JSON file: %s\n", filepath.Base(files[0]))
		return files, nil
	}
	if cmd.NoInteractive {
		fmt.Fprintf(cmd.Out, "✅ Found %d JSON files, importing all\n", len(files))
		return files, nil
	}
	return cmd.prompt().SelectFiles(files)
}

// seedTitles loads existing note titles so new notes do not collide with them.
func (cmd *ImportCommand) seedTitles(logger zerolog.Logger) *notes.TitleRegistry {
	titles := notes.NewTitleRegistry()

	store, err := notes.NewNoteStore(cmd.NotesDBPath)
	if err != nil {
		logger.Debug().Err(err).Msg("existing notes unavailable, titles start empty")
		return titles
	}

	existing, err := store.Titles()
	if err != nil {
		logger.Warn().Err(err).Str("path", store.Path()).Msg("could not read existing note titles")
		return titles
	}

	titles.Seed(existing)
	logger.Info().Int("titles", titles.Len()).Msg("loaded existing note titles")
	return titles
}

func validateExportDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("export directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("export directory not found: %s", dir)
	}
	return abs, nil
}

func newResolver(exportDir, photosDir, videosDir string, logger zerolog.Logger) *media.Resolver {
	if photosDir == "" {
		photosDir = filepath.Join(exportDir, media.PhotosDirName)
	}
	if videosDir == "" {
		videosDir = filepath.Join(exportDir, media.VideosDirName)
	}
	return media.NewResolver(photosDir, videosDir, logger)
}

func printPoolStats(out io.Writer, resolver *media.Resolver) {
	photos, videos := resolver.Stats()
	for _, pool := range []struct {
		icon  string
		name  string
		stats media.PoolStats
	}{
		{"📷", "Photos", photos},
		{"🎬", "Videos", videos},
	} {
		if !pool.stats.Exists {
			fmt.Fprintf(out, "%s %s: folder not found\n", pool.icon, pool.name)
			continue
		}
		fmt.Fprintf(out, "%s %s: %d files (%d by identifier)\n", pool.icon, pool.name, pool.stats.Files, pool.stats.Identifiers)
	}
}
