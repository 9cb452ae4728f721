package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/cristin"
	"github.com/oyvindaas/aarsrapport/internal/report"
)

var (
	summaryYear    int
	summaryOffline bool
)

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&summaryYear, "year", time.Now().Year(), "Report year")
	summaryCmd.Flags().BoolVar(&summaryOffline, "offline", false, "Use the latest cached snapshot instead of fetching")
}

var summaryCmd = &cobra.Command{
	Use:   "summary <person-id>",
	Short: "Show bucket counts for a person and year",
	Long: `Classify a person's publications for the given year and print the
per-bucket counts without rendering a document.

Example:
  rapport summary 123456 --year 2024 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	personID := args[0]

	if err := cristin.ValidatePersonID(personID); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	results, _, err := loadResults(context.Background(), cfg, personID, summaryOffline)
	if err != nil {
		exitWithError(ExitAPIError, "%v", err)
	}

	rep := report.Build(results, summaryYear)

	if humanOutput {
		outputHuman("Publications for person %s in %d:\n", personID, summaryYear)
		printCountsHuman(bucketCounts(rep.Counts()))
		dissemination := rep.DisseminationCounts()
		for _, key := range report.ManualFieldKeys {
			if n := dissemination[key]; n > 0 {
				outputHuman("  %-28s %d\n", key, n)
			}
		}
		if rep.Unclassified > 0 {
			outputHuman("  %-28s %d\n", "unclassified", rep.Unclassified)
		}
		return nil
	}

	return outputJSON(SummaryResponse{
		PersonID:      personID,
		ReportYear:    summaryYear,
		Counts:        bucketCounts(rep.Counts()),
		Dissemination: rep.DisseminationCounts(),
		Unclassified:  rep.Unclassified,
		Total:         rep.Total,
	})
}
