package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string

	rootCmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "tasklist - multi-user task and goal tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml if present)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(sessionsCmd(&configPath))
	rootCmd.AddCommand(routesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
