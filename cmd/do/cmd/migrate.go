package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back event ledger migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd, false)
		},
	})

	return cmd
}

func migrate(cmd *cobra.Command, up bool) error {
	cfg := config.LoadDatabase()
	ctx := cmd.Context()

	conn, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	if up {
		err = db.RunMigrations(ctx, conn.DB, cfg.DBDriver)
	} else {
		err = db.MigrateDown(ctx, conn.DB, cfg.DBDriver)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
