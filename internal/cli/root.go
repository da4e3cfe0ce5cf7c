package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/journal-importer/internal/config"
)

// NewRootCommand wires all subcommands under the journal-importer binary.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "journal-importer",
		Short:         "Import Day One journal exports into Apple Notes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewImportCommand(cfg).Command(),
		NewCheckMediaCommand(cfg).Command(),
	)
	return root
}
