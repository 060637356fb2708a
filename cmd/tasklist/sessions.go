package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lborres/tasklist/core"
	"github.com/lborres/tasklist/internal/config"
	"github.com/lborres/tasklist/services"
)

func sessionsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired session rows",
		Long: `Delete session rows whose expiration has passed.

Expired sessions are never removed while serving requests; run this
command when the table needs trimming.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			db, err := openStore(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			sm := services.NewSessionManager(core.SessionConfig{TTL: cfg.Session.TTL}, db, nil)
			n, err := sm.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired sessions\n", n)
			return nil
		},
	})

	return cmd
}
