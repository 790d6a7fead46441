package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-bots-backend/internal/repo"
	"github.com/tbourn/go-bots-backend/internal/sysutil"
)

const migrateTimeout = 30 * time.Second

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the bots and idempotency tables, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := repo.Open(a.cfg.DB, sysutil.GormLogger(a.cfg.LogLevel))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer closeDB(db)

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()
			if err := repo.AutoMigrate(db.WithContext(ctx)); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Str("db_driver", a.cfg.DB.Driver).Msg("schema up to date")
			return nil
		},
	}
}
