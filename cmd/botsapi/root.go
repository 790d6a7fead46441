package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-bots-backend/internal/config"
	"github.com/tbourn/go-bots-backend/internal/sysutil"
)

const defaultEnvFile = ".env"

// app carries state shared by the subcommands once the root pre-run has
// loaded it.
type app struct {
	envFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "botsapi",
		Short:             "Bots management REST API",
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		RunE:              a.serve,
		PersistentPreRunE: a.load,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&a.envFile, "env-file", defaultEnvFile,
		"dotenv file loaded before reading the environment; variables already set win")

	root.AddCommand(newServeCmd(a), newMigrateCmd(a))
	return root
}

// load reads the env file and the configuration, then configures logging.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(a.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	sysutil.SetupLogging(cfg.LogLevel, cfg.LogPretty, cmd.OutOrStdout())
	a.cfg = cfg
	return nil
}

// loadEnvFile seeds the environment from path. A missing file is only an
// error when the caller named it explicitly.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
