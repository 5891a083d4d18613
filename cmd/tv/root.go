package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tv",
	Short: "tv runs and drives a tinkervision runtime instance",
	Long:  `tv is the command-line front end for the tinkervision vision runtime: start the scheduler, list and load built-in or plug-in modules, wire scenes, and pull snapshots.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults to built-in prefixes)")
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
