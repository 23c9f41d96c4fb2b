package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/sketchpath"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sketchpath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sketchpath version %s\n", sketchpath.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
