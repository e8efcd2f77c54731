package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/SyllabusQA/internal/adapter"
	"github.com/akolanti/SyllabusQA/internal/app"
	"github.com/spf13/cobra"
)

var (
	askClass   string
	askSubject string
)

func init() {
	askCmd.Flags().StringVar(&askClass, "class", "", "Class display name, e.g. \"Class 3\"")
	askCmd.Flags().StringVar(&askSubject, "subject", "", "Subject display name, e.g. \"EVS\"")
	_ = askCmd.MarkFlagRequired("class")
	_ = askCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Select a class and subject, then answer one question",
	Long: `Loads the class archives, keeps the subject's PDFs, builds the index and
answers the question.

Examples:
  syllabusctl ask --class "Class 3" --subject EVS "Why do plants need sunlight?"
  syllabusctl ask --class "Class 4" --subject English "summarize unit_2.pdf"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	application, err := app.Build(ctx, settings)
	if err != nil {
		return err
	}

	selected, err := application.Service.SelectCorpus(ctx, askClass, askSubject)
	if err != nil {
		return fmt.Errorf("%s: %w", selected.Message, err)
	}
	if !selected.OK {
		return fmt.Errorf("%s", selected.Message)
	}

	answer, err := application.Service.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if !humanOutput {
		return outputJSON(cmd, adapter.ToAskResponse(answer))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, selected.Message)
	fmt.Fprintln(out)
	fmt.Fprintln(out, answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Fprintf(out, "\nSources: %s\n", strings.Join(answer.Sources, ", "))
	}
	return nil
}
