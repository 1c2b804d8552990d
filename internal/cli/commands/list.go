package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapforge/profilegen/internal/cli/config"
	"github.com/leapforge/profilegen/internal/mapping"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the mapping table entries",
		Long: `List every (source path, target name) pair in the mapping table.

Dotted source paths address nested sections of the mapping file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := config.GetLogger(cmd.Context())

			tbl, err := mapping.LoadTable(cfg.MappingFile, logger)
			if err != nil {
				return err
			}

			entries := tbl.Entries()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Source", "Target"})
			for _, e := range entries {
				t.AppendRow(table.Row{e.Source, e.Target})
			}
			t.Render()

			printf(cmd, "(%d entries)\n", len(entries))
			return nil
		},
	}
}
