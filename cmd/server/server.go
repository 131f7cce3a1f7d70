package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/api"
	"github.com/axellelanca/shortlinks/internal/auth"
	"github.com/axellelanca/shortlinks/internal/config"
	"github.com/axellelanca/shortlinks/internal/database"
	"github.com/axellelanca/shortlinks/internal/logging"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/axellelanca/shortlinks/internal/services"
)

// RunServerCmd représente la commande 'run-server' de Cobra.
// C'est le point d'entrée pour lancer le serveur de l'application.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Starts the URL shortener API server.",
	Long: `This command opens and migrates the database, wires the repositories,
services and Gin routes, then serves HTTP until SIGINT or SIGTERM.`,
	Run: func(command *cobra.Command, args []string) {
		cfg := cmd.Cfg

		if cfg.Auth.SecretKey == "" {
			log.Fatalf("FATAL: auth.secret_key is empty; set AUTH_SECRET_KEY")
		}

		_, closeLog, err := logging.Setup(cfg)
		if err != nil {
			log.Fatalf("FATAL: Failed to set up logging: %v", err)
		}
		defer closeLog()

		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("FATAL: %v", err)
		}

		urlRepo := repository.NewURLRepository(db)
		userRepo := repository.NewUserRepository(db)
		log.Println("Repositories initialized.")

		tokens := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
		deps := api.Dependencies{
			Tokens: tokens,
			URLs:   services.NewURLService(urlRepo, cfg.ShortCode.Length, cfg.ShortCode.MaxAttempts),
			Users:  services.NewUserService(userRepo, tokens, cfg.Auth.BcryptCost, cfg.Auth.AllowAdminSignup),
			Admin:  services.NewAdminService(urlRepo, userRepo),
		}
		log.Println("Services initialized.")

		router := gin.Default()
		api.SetupRoutes(router, deps)
		log.Println("API routes configured.")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := serve(ctx, router, cfg); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		log.Println("Server stopped cleanly.")
	},
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func serve(ctx context.Context, handler http.Handler, cfg *config.Config) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutdown signal received. Stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
