package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/cristin"
	"github.com/oyvindaas/aarsrapport/internal/docx"
	"github.com/oyvindaas/aarsrapport/internal/publication"
	"github.com/oyvindaas/aarsrapport/internal/report"
	"github.com/oyvindaas/aarsrapport/internal/storage"
)

var (
	generateYear       int
	generateTemplate   string
	generateOut        string
	generateOffline    bool
	generateManual     []string
	generateManualFile string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&generateYear, "year", time.Now().Year(), "Report year")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Template .docx path (default: configured template directory)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Output .docx path (default: configured output directory)")
	generateCmd.Flags().BoolVar(&generateOffline, "offline", false, "Use the latest cached snapshot instead of fetching")
	generateCmd.Flags().StringArrayVar(&generateManual, "manual", nil, "Manual field value as key=value (repeatable)")
	generateCmd.Flags().StringVar(&generateManualFile, "manual-file", "", "YAML file with manual field values")
}

var generateCmd = &cobra.Command{
	Use:   "generate <person-id>",
	Short: "Generate an annual report document",
	Long: `Generate the annual report for a Cristin person and year.

Fetches the person's publication results, classifies and formats them, and
fills the Word template's placeholders. Manual fields can be supplied with
--manual key=value or a YAML file.

Example:
  rapport generate 123456 --year 2024 --manual veiledning_phd="To kandidater."`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	personID := args[0]

	if err := cristin.ValidatePersonID(personID); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	templatePath := generateTemplate
	if templatePath == "" {
		templatePath, err = docx.ResolveTemplate(cfg.TemplateDirOrDefault())
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	if missing, err := docx.MissingPlaceholders(templatePath, report.RequiredPlaceholders()); err == nil && len(missing) > 0 {
		log.WithField("missing", missing).Warn("template lacks some declared placeholders")
	}

	manual, err := collectManualFields()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	ctx := context.Background()
	results, info, err := loadResults(ctx, cfg, personID, generateOffline)
	if err != nil {
		exitWithError(ExitAPIError, "%v", err)
	}

	rep := report.Build(results, generateYear)
	templateCtx := rep.Context(info, manual)

	outPath := generateOut
	if outPath == "" {
		filename := docx.OutputFilename(info.Name, personID, generateYear)
		outPath = filepath.Join(cfg.OutputDirOrDefault(), filename)
	}

	if err := docx.Render(templatePath, outPath, templateCtx); err != nil {
		exitWithError(ExitError, "rendering report: %v", err)
	}

	if humanOutput {
		outputHuman("Report written to %s\n", outPath)
		printCountsHuman(bucketCounts(rep.Counts()))
		if rep.Unclassified > 0 {
			outputHuman("  %-28s %d\n", "unclassified", rep.Unclassified)
		}
		return nil
	}

	return outputJSON(GenerateResponse{
		Status:       "ok",
		Path:         outPath,
		PersonID:     personID,
		ReportYear:   generateYear,
		Counts:       bucketCounts(rep.Counts()),
		Unclassified: rep.Unclassified,
		Total:        rep.Total,
	})
}

// collectManualFields merges --manual-file values with --manual flags; flags
// win on conflicts. Unknown keys are rejected so typos don't vanish silently.
func collectManualFields() (map[string]string, error) {
	manual := make(map[string]string)

	if generateManualFile != "" {
		data, err := os.ReadFile(generateManualFile)
		if err != nil {
			return nil, fmt.Errorf("reading manual fields file: %w", err)
		}
		if err := yaml.Unmarshal(data, &manual); err != nil {
			return nil, fmt.Errorf("parsing manual fields file: %w", err)
		}
	}

	fromFlags, err := parseManualAssignments(generateManual)
	if err != nil {
		return nil, err
	}
	for k, v := range fromFlags {
		manual[k] = v
	}

	for key := range manual {
		if !report.IsManualFieldKey(key) {
			return nil, fmt.Errorf("unknown manual field %q", key)
		}
	}
	return manual, nil
}

// loadResults returns the person's results and header info, either from the
// API (caching a snapshot on the way) or from the latest cached snapshot.
func loadResults(ctx context.Context, cfg *config.Config, personID string, offline bool) ([]publication.Result, report.PersonInfo, error) {
	info := report.PersonInfo{Name: publication.UnknownPersonName}

	if offline {
		db, err := storage.OpenDB(cfg.CachePathOrDefault())
		if err != nil {
			return nil, info, err
		}
		defer db.Close()

		snap, err := db.LatestSnapshot(personID)
		if err != nil {
			return nil, info, err
		}
		if snap == nil {
			return nil, info, fmt.Errorf("no cached snapshot for person %s (run 'rapport fetch %s' first)", personID, personID)
		}
		return snap.Results, info, nil
	}

	client := newClient(cfg)
	results, err := client.FetchResults(ctx, personID)
	if err != nil {
		return nil, info, err
	}

	if person, err := client.FetchPerson(ctx, personID); err != nil {
		// Header fields degrade; the report still renders.
		log.WithError(err).WithField("person", personID).Warn("fetching person details")
	} else {
		info.Name = person.DisplayName()
		info.Institution, info.InstitutionSecondary = person.AffiliationNames()
	}

	if db, err := storage.OpenDB(cfg.CachePathOrDefault()); err == nil {
		if err := db.SaveSnapshot(personID, results); err != nil {
			log.WithError(err).Warn("caching snapshot")
		}
		db.Close()
	}

	return results, info, nil
}
