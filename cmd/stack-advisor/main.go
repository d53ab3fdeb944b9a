package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stack-advisor/internal/common/config"
	"stack-advisor/internal/common/logger"
	"stack-advisor/pkg/registry"
)

// errReported means the command already wrote its failure to stdout.
var errReported = errors.New("failure already reported")

type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "stack-advisor",
		Short: "Rule-based technology stack recommendations",
		Long: `stack-advisor maps answers to a short questionnaire onto a recommended
technology stack (frontend, backend, infrastructure, tools).

Examples:
  echo '[{"questionId":"app-type","value":"web"}]' | stack-advisor recommend
  stack-advisor tree --answer app-type=mobile --answer budget=minimal
  stack-advisor questions`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config.yaml (defaults are used when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newRecommendCmd(a),
		newTreeCmd(a),
		newQuestionsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Defaults()
	if a.configPath != "" {
		loaded, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewZapAdapter(zapLog)
	return nil
}

func (a *app) questions() (*registry.QuestionRegistry, error) {
	if a.cfg == nil || a.cfg.Catalog.QuestionsPath == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(a.cfg.Catalog.QuestionsPath)
}
