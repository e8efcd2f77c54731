// Package main provides the syllabusctl CLI, which drives the retrieval service without the http layer.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akolanti/SyllabusQA/internal/app"
	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/spf13/cobra"
)

var (
	humanOutput bool
	configPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "syllabusctl",
	Short: "Ask questions about the syllabus from the terminal",
	Long: `syllabusctl loads a class and subject from the dataset folder and answers
questions about it with the configured model provider. Output is JSON unless
--human is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Path to the yaml settings file")
}

func loadSettings() (config.Settings, error) {
	return app.LoadSettings(configPath)
}

func outputJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
