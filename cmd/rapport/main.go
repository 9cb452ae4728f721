// Package main provides the rapport CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
	"github.com/oyvindaas/aarsrapport/internal/cristin"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rapport",
	Short: "Cristin annual report generator",
	Long: `rapport builds annual research reports from Cristin publication data.

It fetches a researcher's publication results, classifies each into the
report's buckets, formats APA-style references, and fills the placeholders
of the institution's Word template. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// newClient builds a Cristin client honoring the configured base URL.
func newClient(cfg *config.Config) *cristin.Client {
	var opts []cristin.ClientOption
	if cfg.CristinBaseURL != "" {
		opts = append(opts, cristin.WithBaseURL(cfg.CristinBaseURL))
	}
	return cristin.NewClient(opts...)
}
