package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyvindaas/aarsrapport/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set configuration values",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}

		if humanOutput {
			outputHuman("template_dir:     %s\n", cfg.TemplateDirOrDefault())
			outputHuman("output_dir:       %s\n", cfg.OutputDirOrDefault())
			outputHuman("cristin_base_url: %s\n", cfg.CristinBaseURL)
			outputHuman("cache_path:       %s\n", cfg.CachePathOrDefault())
			return nil
		}
		return outputJSON(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the global config file.

Keys: template_dir, output_dir, cristin_base_url, cache_path`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}

		switch key {
		case "template_dir":
			cfg.TemplateDir = value
		case "output_dir":
			cfg.OutputDir = value
		case "cristin_base_url":
			cfg.CristinBaseURL = value
		case "cache_path":
			cfg.CachePath = value
		default:
			exitWithError(ExitError, "unknown config key %q", key)
		}

		if err := cfg.Save(); err != nil {
			exitWithError(ExitConfigError, "saving config: %v", err)
		}

		if humanOutput {
			outputHuman("%s = %s\n", key, value)
			return nil
		}
		return outputJSON(map[string]string{
			"status": "ok",
			"key":    key,
			"value":  fmt.Sprint(value),
		})
	},
}
