package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(classesCmd, subjectsCmd)
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the configured classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return printNames(cmd, settings.ClassNames())
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the configured subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return printNames(cmd, settings.SubjectNames())
	},
}

func printNames(cmd *cobra.Command, names []string) error {
	if !humanOutput {
		return outputJSON(cmd, names)
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
