package main

import (
	"context"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/cristin"
	"github.com/oyvindaas/aarsrapport/internal/storage"
)

var (
	fetchOut string
	fetchRaw bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchOut, "out", "", "Also write results to a JSONL snapshot file")
	fetchCmd.Flags().BoolVar(&fetchRaw, "raw", false, "Print the raw results instead of a summary")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <person-id>",
	Short: "Fetch and cache a person's publication results",
	Long: `Fetch all publication results for a Cristin person and store them in
the snapshot cache, so reports can later be generated with --offline.

Example:
  rapport fetch 123456 --out snapshots/123456.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	personID := args[0]

	if err := cristin.ValidatePersonID(personID); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	client := newClient(cfg)
	results, err := client.FetchResults(context.Background(), personID)
	if err != nil {
		exitWithError(ExitAPIError, "fetching results: %v", err)
	}

	db, err := storage.OpenDB(cfg.CachePathOrDefault())
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(personID, results); err != nil {
		exitWithError(ExitError, "caching snapshot: %v", err)
	}

	if fetchOut != "" {
		if err := storage.WriteResults(fetchOut, results); err != nil {
			exitWithError(ExitError, "writing snapshot file: %v", err)
		}
		log.WithFields(log.Fields{"path": fetchOut, "results": len(results)}).Info("wrote snapshot file")
	}

	if fetchRaw {
		return outputJSON(results)
	}

	if humanOutput {
		outputHuman("Fetched %d results for person %s\n", len(results), personID)
		if fetchOut != "" {
			outputHuman("Snapshot written to %s\n", fetchOut)
		}
		return nil
	}

	return outputJSON(FetchResponse{
		Status:      "ok",
		PersonID:    personID,
		ResultCount: len(results),
		Snapshot:    fetchOut,
	})
}
