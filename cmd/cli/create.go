package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/auth"
	"github.com/axellelanca/shortlinks/internal/database"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/axellelanca/shortlinks/internal/services"
	"github.com/spf13/cobra"
)

var (
	longURLFlag   string
	ownerNameFlag string
)

// CreateCmd représente la commande 'create'
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a short URL on behalf of an existing user.",
	Long: `This command shortens a long URL for the given user and prints the short code.
Running it twice for the same user and URL prints the same code.

Example:
  urlshortener create --username=alice --url="https://www.google.com/search?q=go+lang"`,
	Run: func(command *cobra.Command, args []string) {
		db, err := database.Open(cmd.Cfg)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		defer database.Close(db)

		ctx := context.Background()
		userRepo := repository.NewUserRepository(db)
		owner, err := userRepo.FindByUsername(ctx, ownerNameFlag)
		if err != nil {
			fmt.Printf("Error: user '%s' not found: %v\n", ownerNameFlag, err)
			os.Exit(1)
		}

		urlService := services.NewURLService(repository.NewURLRepository(db), cmd.Cfg.ShortCode.Length, cmd.Cfg.ShortCode.MaxAttempts)
		identity := auth.Identity{UserID: owner.ID, Username: owner.Username, Role: owner.Role}

		shortURL, err := urlService.Create(ctx, identity, longURLFlag)
		if errors.Is(err, customerrors.ErrInvalidURL) {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Failed to create short link: %v", err)
		}

		fmt.Printf("Short URL created:\n")
		fmt.Printf("Code: %s\n", shortURL.ShortCode)
		fmt.Printf("Resolve with: %s/urls/%s\n", cmd.Cfg.Server.BaseURL, shortURL.ShortCode)
	},
}

func init() {
	CreateCmd.Flags().StringVar(&longURLFlag, "url", "", "The long URL to shorten")
	CreateCmd.Flags().StringVar(&ownerNameFlag, "username", "", "Username of the owner")
	CreateCmd.MarkFlagRequired("url")
	CreateCmd.MarkFlagRequired("username")

	cmd.RootCmd.AddCommand(CreateCmd)
}
