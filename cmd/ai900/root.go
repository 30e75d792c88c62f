package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/config"
	"github.com/timothywarner/ai900/internal/console"
	"github.com/timothywarner/ai900/internal/domain"
	logpkg "github.com/timothywarner/ai900/internal/logger"
	"github.com/timothywarner/ai900/internal/metrics"
	"github.com/timothywarner/ai900/internal/version"
)

// app is the state shared by all sub-commands, filled in by PersistentPreRunE.
type app struct {
	cfgFile  string
	envFile  string
	logLevel string

	env    string
	cfg    config.Config
	logger *zap.Logger
	out    *console.Printer
	usage  *domain.TokenUsage
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ai900",
		Short: "AI-900 Azure AI Fundamentals demonstrations",
		Long: `ai900 runs the AI-900 course demonstrations: retrieval augmented generation,
prompt engineering, Azure OpenAI, content moderation, language, vision, document
intelligence, predictive pricing and the assistant metrics dashboard. Run
"ai900 health" first to check the configured services.

Credentials are read from the environment or a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.reportUsage()
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (default config/<ENV>.yaml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with service credentials")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRAGCommand(a),
		newPromptCommand(a),
		newQuickstartCommand(a),
		newModerateCommand(a),
		newLanguageCommand(a),
		newVisionCommand(a),
		newDocumentCommand(a),
		newAutopriceCommand(a),
		newDashboardCommand(a),
		newHealthCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", a.envFile, err)
	}

	a.env = config.GetEnv()

	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadFile(a.cfgFile)
	} else {
		a.cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := a.cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger, err = logpkg.NewLogger(a.env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterAIMetrics()
	a.out = console.New(cmd.OutOrStdout())
	a.usage = &domain.TokenUsage{}

	a.logger.Debug("Starting ai900",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", version.Version),
		zap.String("env", a.env),
	)
	return nil
}

// demoContext carries the logger tagged with the demo name and the run's token collector.
func (a *app) demoContext(ctx context.Context, demo string) context.Context {
	ctx = domain.ContextWithUsage(ctx, a.usage)
	return logpkg.WithDemo(logpkg.ContextWithLogger(ctx, a.logger), demo)
}

func (a *app) reportUsage() {
	if a.usage == nil || a.out == nil {
		return
	}
	prompt, completion, calls := a.usage.Counts()
	if calls == 0 {
		return
	}
	a.out.Muted("Tokens: %d prompt + %d completion across %d model calls", prompt, completion, calls)
	a.logger.Debug("Token usage",
		zap.Int("prompt_tokens", prompt),
		zap.Int("completion_tokens", completion),
		zap.Int("calls", calls),
	)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// No config or credentials needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
