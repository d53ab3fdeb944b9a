package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stack-advisor/internal/advisor"
	"stack-advisor/pkg/registry"
)

func newQuestionsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the questionnaire and the accepted answer values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := a.questions()
			if err != nil {
				return err
			}
			if asJSON {
				return advisor.WriteJSON(cmd.OutOrStdout(), q)
			}
			return printQuestions(cmd.OutOrStdout(), q)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")
	return cmd
}

func printQuestions(w io.Writer, q *registry.QuestionRegistry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, question := range q.Questions {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s [%s]\t%s\n", question.ID, question.Category, question.Text)
		for _, opt := range question.Options {
			fmt.Fprintf(tw, "  %s\t%s\n", opt.Value, opt.Label)
		}
	}
	return tw.Flush()
}
