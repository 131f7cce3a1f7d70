package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/database"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/axellelanca/shortlinks/internal/services"
	"github.com/spf13/cobra"
)

// StatsCmd représente la commande 'stats'
var StatsCmd = &cobra.Command{
	Use:   "stats [short-code]",
	Short: "Get statistics for a short URL",
	Long:  `Get the access count of the provided short code. Looking it up here does not count as an access.`,
	Args:  cobra.ExactArgs(1),
	Run:   runStats,
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}

// runStats exécute la logique pour la commande stats
func runStats(command *cobra.Command, args []string) {
	shortCode := args[0]

	db, err := database.Open(cmd.Cfg)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer database.Close(db)

	urlService := services.NewURLService(repository.NewURLRepository(db), cmd.Cfg.ShortCode.Length, cmd.Cfg.ShortCode.MaxAttempts)

	shortURL, err := urlService.Stats(context.Background(), shortCode)
	if err != nil {
		if errors.Is(err, customerrors.ErrShortCodeNotFound) {
			fmt.Printf("Error: Short code '%s' not found\n", shortCode)
		} else {
			fmt.Printf("Error retrieving statistics: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Statistics for short code: %s\n", shortCode)
	fmt.Printf("Long URL: %s\n", shortURL.URL)
	fmt.Printf("Owner ID: %d\n", shortURL.OwnerID)
	fmt.Printf("Access count: %d\n", shortURL.AccessCount)
	fmt.Printf("Created at: %s\n", shortURL.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated at: %s\n", shortURL.UpdatedAt.Format("2006-01-02 15:04:05"))
}
