package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/auth"
	"github.com/axellelanca/shortlinks/internal/database"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/axellelanca/shortlinks/internal/services"
	"github.com/spf13/cobra"
)

var adminInput services.RegisterInput

// CreateAdminCmd bootstraps an admin account, since the API refuses admin
// self-registration by default.
var CreateAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Creates an admin account.",
	Run: func(command *cobra.Command, args []string) {
		db, err := database.Open(cmd.Cfg)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("FATAL: %v", err)
		}

		// The token manager is unused here; CreateAdmin never issues tokens.
		userService := services.NewUserService(repository.NewUserRepository(db),
			auth.NewTokenManager(cmd.Cfg.Auth.SecretKey, cmd.Cfg.Auth.TokenTTL),
			cmd.Cfg.Auth.BcryptCost, cmd.Cfg.Auth.AllowAdminSignup)

		user, err := userService.CreateAdmin(context.Background(), adminInput)
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		fmt.Printf("Admin '%s' created with id %d.\n", user.Username, user.ID)
	},
}

func init() {
	flags := CreateAdminCmd.Flags()
	flags.StringVar(&adminInput.Username, "username", "", "Admin username")
	flags.StringVar(&adminInput.Email, "email", "", "Admin email")
	flags.StringVar(&adminInput.Password, "password", "", "Admin password")
	flags.StringVar(&adminInput.FirstName, "first-name", "", "First name")
	flags.StringVar(&adminInput.LastName, "last-name", "", "Last name")
	CreateAdminCmd.MarkFlagRequired("username")
	CreateAdminCmd.MarkFlagRequired("email")
	CreateAdminCmd.MarkFlagRequired("password")

	cmd.RootCmd.AddCommand(CreateAdminCmd)
}
