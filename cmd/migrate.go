package cmd

import (
	"fmt"

	"github.com/BoulehmiHoussem/Logient/internal/config"
	"github.com/BoulehmiHoussem/Logient/internal/models"
	"github.com/BoulehmiHoussem/Logient/internal/repository"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the users and links tables from the GORM
// models. Intended for local sqlite development; postgres deployments use
// the SQL files under migration/ which serve runs automatically.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations for the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := repository.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		if err := db.AutoMigrate(&models.User{}, &models.Link{}); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Println("Database migrations ran successfully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
