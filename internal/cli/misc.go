package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayarmananan1994/notifyme/pkg/constants"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

func (a *app) idCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Print freshly generated identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), util.GenerateID())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "How many identifiers")
	return cmd
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", constants.AppName, constants.AppVersion, constants.AppDescription)
		},
	}
}
