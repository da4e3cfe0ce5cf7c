package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/journal-importer/internal/config"
	"github.com/mrlokans/journal-importer/internal/dayone"
	"github.com/mrlokans/journal-importer/internal/entities"
	"github.com/mrlokans/journal-importer/internal/logging"
)

// CheckMediaCommand resolves every media reference of an export without creating notes
type CheckMediaCommand struct {
	ExportDir string
	PhotosDir string
	VideosDir string
	Verbose   bool

	Out       io.Writer
	LogOutput io.Writer
}

func NewCheckMediaCommand(cfg *config.Config) *CheckMediaCommand {
	return &CheckMediaCommand{
		PhotosDir: cfg.Media.PhotosDir,
		VideosDir: cfg.Media.VideosDir,
		Verbose:   cfg.Log.Verbose,
		Out:       os.Stdout,
		LogOutput: os.Stderr,
	}
}

func (cmd *CheckMediaCommand) Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "check-media <export-dir>",
		Short: "Report media references that cannot be matched to files",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cmd.ExportDir = args[0]
			return cmd.Run(c.Context())
		},
	}
	c.Flags().BoolVarP(&cmd.Verbose, "verbose", "v", cmd.Verbose, "Enable verbose logging")
	return c
}

// MediaCheck is the outcome of a check-media run.
type MediaCheck struct {
	Entries        int
	PhotosTotal    int
	PhotosResolved int
	VideosTotal    int
	VideosResolved int
	Missing        []entities.MissingMedia
}

func (cmd *CheckMediaCommand) Run(ctx context.Context) error {
	fmt.Fprintln(cmd.Out, "🔎 Day One Media Check")
	fmt.Fprintln(cmd.Out, "======================")

	exportDir, err := validateExportDir(cmd.ExportDir)
	if err != nil {
		return err
	}
	cmd.ExportDir = exportDir

	logger := logging.SetupWithWriter(cmd.Verbose, cmd.LogOutput)

	files, err := dayone.FindExportFiles(cmd.ExportDir)
	if err != nil {
		return err
	}
	entries, err := dayone.NewParser(logger).ParseFiles(files)
	if err != nil {
		return err
	}

	resolver := newResolver(cmd.ExportDir, cmd.PhotosDir, cmd.VideosDir, logger)
	printPoolStats(cmd.Out, resolver)

	check := MediaCheck{Entries: len(entries)}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ErrInterrupted
		}
		resolved := resolver.ResolveEntry(entry)
		check.PhotosTotal += len(entry.Photos)
		check.VideosTotal += len(entry.Videos)
		check.PhotosResolved += len(resolved.Photos)
		check.VideosResolved += len(resolved.Videos)
		check.Missing = append(check.Missing, resolved.Missing...)
	}

	printMediaCheck(cmd.Out, check)
	return nil
}

func printMediaCheck(out io.Writer, check MediaCheck) {
	fmt.Fprintf(out, "\n📓 Entries: %d\n", check.Entries)
	fmt.Fprintf(out, "📷 Photos resolved: %d/%d\n", check.PhotosResolved, check.PhotosTotal)
	fmt.Fprintf(out, "🎬 Videos resolved: %d/%d\n", check.VideosResolved, check.VideosTotal)

	if len(check.Missing) == 0 {
		fmt.Fprintln(out, "\n✅ All media references resolved")
		return
	}

	fmt.Fprintf(out, "\n⚠️  %d missing media files:\n", len(check.Missing))
	for _, m := range check.Missing {
		fmt.Fprintf(out, "  ❌ %s (entry %s)\n", m, m.EntryUUID)
	}
}
