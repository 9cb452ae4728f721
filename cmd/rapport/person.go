package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/cristin"
)

func init() {
	rootCmd.AddCommand(personCmd)
}

var personCmd = &cobra.Command{
	Use:   "person <person-id>",
	Short: "Look up a person's name and affiliations",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerson,
}

func runPerson(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	personID := args[0]

	if err := cristin.ValidatePersonID(personID); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	person, err := newClient(cfg).FetchPerson(context.Background(), personID)
	if err != nil {
		code := ExitAPIError
		if cristin.IsNotFound(err) {
			code = ExitDataError
		}
		exitWithError(code, "fetching person: %v", err)
	}

	primary, secondary := person.AffiliationNames()

	if humanOutput {
		outputHuman("%s\n", person.DisplayName())
		if primary != "" {
			outputHuman("  %s\n", primary)
		}
		if secondary != "" {
			outputHuman("  %s\n", secondary)
		}
		return nil
	}

	return outputJSON(PersonResponse{
		PersonID:             personID,
		Name:                 person.DisplayName(),
		Institution:          primary,
		InstitutionSecondary: secondary,
	})
}
