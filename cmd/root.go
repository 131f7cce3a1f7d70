package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/axellelanca/shortlinks/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable that will contain the loaded configuration
// It will be accessible to all Cobra commands throughout the application
var Cfg *config.Config

// RootCmd is the base command for the CLI application
// All other commands (run-server, migrate, create, stats, create-admin, check-urls)
// are added as subcommands
var RootCmd = &cobra.Command{
	Use:   "urlshortener",
	Short: "An authenticated URL shortener",
	Long: `An URL shortener where registered users own their short links,
resolution is public and counted, and admins manage every account and link.`,
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Load configuration before any command executes.
	// Subcommands register themselves via their own init() functions.
	cobra.OnInitialize(initConfig)
}

// initConfig loads the application configuration
// This function is called at the beginning of every Cobra command execution
func initConfig() {
	var err error

	Cfg, err = config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Problem loading configuration: %v", err)
	}
}
