package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingo-backend/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lingo %s\n", app.BuildVersion())
	},
}
