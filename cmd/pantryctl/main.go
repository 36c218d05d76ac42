package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/logger"
)

var (
	cfg  *config.Config
	zlog *zap.Logger
	db   *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:           "pantryctl",
	Short:         "Administrative tasks for the pantry recipe service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if zlog, err = logger.NewLogger(string(cfg.Env), cfg.LogLevel); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if db, err = database.Open(cfg, zlog); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, importCmd)
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs one command and returns the process exit code. The pool and
// the logger are released whether or not the command failed.
func execute(args []string) int {
	defer func() {
		if db != nil {
			_ = database.Close(db)
		}
		if zlog != nil {
			_ = zlog.Sync()
		}
	}()

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
