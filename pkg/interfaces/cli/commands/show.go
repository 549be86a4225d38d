package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <assignment-id>",
		Short: "Display an expertise case with its line-item tables",
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

			renderCase(cmd.OutOrStdout(), cs, e.cfg.CurrencyLocale())
			return nil
		},
	}
}
