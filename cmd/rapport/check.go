package main

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/docx"
	"github.com/oyvindaas/aarsrapport/internal/report"
)

var checkTemplate string

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkTemplate, "template", "", "Template .docx path (default: configured template directory)")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the template declares every required placeholder",
	Long: `List the placeholders found in the report template and flag any
required placeholder the template is missing. Exits non-zero when
placeholders are missing, so the check can gate template updates.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	templatePath := checkTemplate
	if templatePath == "" {
		templatePath, err = docx.ResolveTemplate(cfg.TemplateDirOrDefault())
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	present, err := docx.ExtractPlaceholders(templatePath)
	if err != nil {
		exitWithError(ExitDataError, "reading template: %v", err)
	}

	placeholders := make([]string, 0, len(present))
	for name := range present {
		placeholders = append(placeholders, name)
	}
	sort.Strings(placeholders)

	missing, err := docx.MissingPlaceholders(templatePath, report.RequiredPlaceholders())
	if err != nil {
		exitWithError(ExitDataError, "checking template: %v", err)
	}

	if humanOutput {
		outputHuman("Template: %s\n", templatePath)
		outputHuman("Placeholders (%d):\n", len(placeholders))
		for _, name := range placeholders {
			outputHuman("  %s\n", name)
		}
		if len(missing) > 0 {
			outputHuman("Missing required placeholders (%d):\n", len(missing))
			for _, name := range missing {
				outputHuman("  %s\n", name)
			}
		}
	} else {
		outputJSON(CheckResponse{
			Template:     templatePath,
			Placeholders: placeholders,
			Missing:      missing,
		})
	}

	if len(missing) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}
