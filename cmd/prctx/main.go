package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bkyoung/pr-context/internal/adapter/cli"
	"github.com/bkyoung/pr-context/internal/adapter/gh"
	"github.com/bkyoung/pr-context/internal/adapter/git"
	"github.com/bkyoung/pr-context/internal/adapter/observability"
	"github.com/bkyoung/pr-context/internal/adapter/output"
	"github.com/bkyoung/pr-context/internal/config"
	"github.com/bkyoung/pr-context/internal/usecase/collect"
	"github.com/bkyoung/pr-context/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "prctx",
		EnvPrefix:   "PRCTX",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := observability.NewLogger(os.Stderr, cfg.Logging.Level)

	if err := gh.EnsureAvailable(); err != nil {
		return err
	}
	ghClient := gh.NewClient(cfg.Repository)

	gitEngine := git.NewEngine(cfg.Git.RepositoryDir, cfg.Git.Remote)

	collector := collect.NewCollector(collect.Deps{
		Git:    gitEngine,
		GitHub: ghClient,
		Logger: logger,
		Limits: collect.Limits{
			MaxDiffLines:     cfg.Limits.MaxDiffLines,
			DiffBatchSize:    cfg.Limits.DiffBatchSize,
			MaxThreads:       cfg.Limits.MaxThreads,
			MaxIssueComments: cfg.Limits.MaxIssueComments,
			ReviewBodyChars:  cfg.Limits.ReviewBodyChars,
			CommentBodyChars: cfg.Limits.CommentBodyChars,
			ReplyBodyChars:   cfg.Limits.ReplyBodyChars,
		},
		Timeouts: collect.Timeouts{
			Short: cfg.Timeouts.Short,
			Long:  cfg.Timeouts.Long,
		},
	})

	writer := output.NewWriter(logger.Warnf)

	root := cli.NewRootCommand(cli.Dependencies{
		Collector: collector,
		Writer:    writer,
		Version:   version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prctx"))
	}
	return paths
}

// Compile-time interface compliance checks
var _ collect.GitEngine = (*git.Engine)(nil)
var _ collect.PRService = (*gh.Client)(nil)
var _ collect.Logger = (*observability.Logger)(nil)
var _ cli.ContextCollector = (*collect.Collector)(nil)
var _ cli.ReportWriter = (*output.Writer)(nil)
