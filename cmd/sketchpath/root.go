package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/sketchpath/internal/logging"
)

// logger is built from --log-level before any subcommand runs.
var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:   "sketchpath",
	Short: "sketchpath routes lines around sketched obstacles",
	Long: `sketchpath keeps a canvas of drawn obstacle segments and, for every pair of
points, finds a walkable route that avoids the obstacles and every route
accepted before it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(lvl)
		if err != nil {
			return err
		}
		logger = logging.New(cmd.ErrOrStderr(), level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringP("scenario", "s", "", "YAML scenario file")
}
