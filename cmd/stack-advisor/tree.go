package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stack-advisor/internal/catalog"
	"stack-advisor/internal/decisiontree"
)

func newTreeCmd(a *app) *cobra.Command {
	var answers []string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the decision tree",
		Long: `Prints the decision tree as an indented diagram.

With --answer flags the nodes visited by the resolver are marked with "*"
and the node the recommendation came from is tagged [terminal].

Example:
  stack-advisor tree --answer app-type=web --answer timeline=fast --answer complexity=simple`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := parseAnswerFlags(answers)
			if err != nil {
				return err
			}
			return printTree(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "answer as key=value; repeatable")
	return cmd
}

func parseAnswerFlags(flags []string) (decisiontree.AnswerSet, error) {
	set := decisiontree.AnswerSet{}
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --answer %q, expected key=value", f)
		}
		set[key] = strings.TrimSpace(value)
	}
	return set, nil
}

func printTree(w io.Writer, answers decisiontree.AnswerSet) error {
	c, err := catalog.Builtin()
	if err != nil {
		return err
	}
	store, err := c.Store()
	if err != nil {
		return err
	}
	resolver := decisiontree.NewResolver(store, c.Default)

	highlight := len(answers) > 0
	walk := resolver.Trace(answers)
	visited := make(map[*decisiontree.Node]bool, len(walk.Visited))
	for _, n := range walk.Visited {
		visited[n] = true
	}

	var b strings.Builder
	store.Walk(func(path, label string, depth int, n *decisiontree.Node) {
		b.WriteString(strings.Repeat("  ", depth))
		if highlight && visited[n] {
			b.WriteString("* ")
		} else {
			b.WriteString("  ")
		}
		if path == "" {
			b.WriteString(n.Name())
		} else {
			b.WriteString(label)
			if d := n.Description(); d != "" {
				fmt.Fprintf(&b, " (%s)", d)
			}
		}
		if p, ok := n.Payload(); ok {
			b.WriteString(": ")
			b.WriteString(primaries(p))
		}
		if highlight && walk.Terminal && n == walk.Node {
			b.WriteString(" [terminal]")
		}
		b.WriteByte('\n')
	})

	if highlight {
		fmt.Fprintf(&b, "\ndecision path: %s\n", resolver.Resolve(answers).DecisionPath)
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func primaries(p decisiontree.Payload) string {
	parts := make([]string, 0, len(decisiontree.AllCategories))
	for _, c := range p.Categories() {
		parts = append(parts, fmt.Sprintf("%s=%s", c, strings.Join(p.For(c).Primary, ", ")))
	}
	return strings.Join(parts, "; ")
}
