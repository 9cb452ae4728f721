package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/docx"
	"github.com/oyvindaas/aarsrapport/internal/web"
)

var (
	serveAddr     string
	serveTemplate string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveTemplate, "template", "", "Template .docx path (default: configured template directory)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report-generation web form",
	Long: `Start a local web server with a form for generating reports: person
ID entry, year selection, and the manual text fields. Submitting the form
downloads the filled document.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	templatePath := serveTemplate
	if templatePath == "" {
		templatePath, err = docx.ResolveTemplate(cfg.TemplateDirOrDefault())
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	handler := web.NewHandler(newClient(cfg), templatePath)
	if err := web.ListenAndServe(serveAddr, handler); err != nil {
		exitWithError(ExitError, "server: %v", err)
	}
	return nil
}
