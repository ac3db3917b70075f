package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/config"
	"github.com/BoulehmiHoussem/Logient/internal/repository"
	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/spf13/cobra"
)

// reapCmd is the entry point for an external scheduler (cron) to delete
// links past the retention window. The serve command runs the same reaper
// on an internal daily ticker; running both is harmless since the delete
// is idempotent for a given cutoff.
var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Delete links older than the retention window and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		db, err := repository.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		reaper := services.NewExpiryReaper(db, logger, time.Duration(cfg.LinkTTLHours)*time.Hour)
		deleted, err := reaper.Run(time.Now())
		if err != nil {
			return fmt.Errorf("reaper run failed: %w", err)
		}

		fmt.Printf("Deleted %d expired links.\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reapCmd)
}
