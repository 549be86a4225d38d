package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mbarret/expertdesk/pkg/infrastructure/export"
)

func newExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <assignment-id>",
		Short: "Export an expertise case to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid assignment id %q", args[0])
			}

			e, err := buildEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			cs, err := e.cases.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer cs.Close()

			assignment := cs.Assignment()
			if outPath == "" {
				outPath = filepath.Join(e.cfg.ExportDir, assignment.Reference+".xlsx")
			}

			err = export.Save(outPath, assignment, export.Options{
				Locale:        e.cfg.CurrencyLocale(),
				SupplyLabel:   cs.Supplies.Label,
				WorkTypeLabel: cs.WorkTypes.Label,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", assignment.Reference, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (defaults to <reference>.xlsx in the export dir)")
	return cmd
}
