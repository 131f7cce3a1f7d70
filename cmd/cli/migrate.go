package cli

import (
	"fmt"
	"log"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/database"
	"github.com/spf13/cobra"
)

// MigrateCmd represents the 'migrate' command
// This command handles database schema creation and updates
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations to create or update tables.",
	Long: `This command connects to the configured database (SQLite or PostgreSQL)
and executes GORM automatic migrations to create the 'users' and 'short_urls' tables
based on the Go models.`,
	Run: func(command *cobra.Command, args []string) {
		db, err := database.Open(cmd.Cfg)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("FATAL: %v", err)
		}

		fmt.Println("Database migrations executed successfully.")
	},
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}
