package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"stack-advisor/internal/advisor"
	"stack-advisor/internal/catalog"
	"stack-advisor/internal/decisiontree"
)

func newRecommendCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Resolve a list of answers into a recommendation record",
		Long: `Reads a JSON array of {"questionId", "value"} objects from stdin (or --input)
and writes the recommendation record as JSON to stdout.

On failure an error record is written instead and the exit status is 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.recommend(cmd, input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read the request from a file instead of stdin")
	return cmd
}

func (a *app) recommend(cmd *cobra.Command, input string) error {
	out := cmd.OutOrStdout()

	rec, err := a.resolveRequest(cmd, input)
	if err != nil {
		a.log.Error("recommendation failed", map[string]interface{}{"error": err})
		if werr := advisor.WriteJSON(out, advisor.NewErrorRecord(err)); werr != nil {
			return werr
		}
		return errReported
	}
	return advisor.WriteJSON(out, rec)
}

func (a *app) resolveRequest(cmd *cobra.Command, input string) (decisiontree.Record, error) {
	raw, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return decisiontree.Record{}, err
	}

	resolver, err := catalog.DefaultResolver()
	if err != nil {
		return decisiontree.Record{}, err
	}
	questions, err := a.questions()
	if err != nil {
		return decisiontree.Record{}, err
	}

	svc := advisor.NewService(resolver,
		advisor.WithLogger(a.log),
		advisor.WithQuestions(questions),
	)
	return svc.RecommendRaw(cmd.Context(), raw)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
