package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/database"
	"github.com/axellelanca/shortlinks/internal/monitor"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/spf13/cobra"
)

// CheckURLsCmd checks once whether every stored target URL still answers.
var CheckURLsCmd = &cobra.Command{
	Use:   "check-urls",
	Short: "Checks the reachability of every stored long URL.",
	Run: func(command *cobra.Command, args []string) {
		db, err := database.Open(cmd.Cfg)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		defer database.Close(db)

		checker := monitor.NewLinkChecker(repository.NewURLRepository(db), cmd.Cfg.Monitor.Timeout)
		results, err := checker.CheckAll(context.Background())
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}

		broken := 0
		for _, r := range results {
			if !r.Accessible {
				broken++
				fmt.Printf("%s -> %s: %v\n", r.ShortCode, r.URL, r.Err)
			}
		}
		fmt.Printf("%d link(s) checked, %d inaccessible.\n", len(results), broken)
	},
}

func init() {
	cmd.RootCmd.AddCommand(CheckURLsCmd)
}
