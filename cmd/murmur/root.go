package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"murmur/internal/config"
	"murmur/internal/daemon"
	"murmur/internal/logging"
	"murmur/internal/notes"
	"murmur/internal/notifications"
	"murmur/internal/prompt"
	"murmur/internal/queue"
	"murmur/internal/services"
	"murmur/internal/services/deepgram"
	"murmur/internal/services/llm"
	"murmur/internal/stability"
	"murmur/internal/watch"
	"murmur/internal/workflow"
)

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "murmur",
		Short:         "Watch a directory for audio recordings and turn them into Markdown notes",
		Long:          "murmur watches a directory for new audio files, asks for confirmation, then transcribes, summarizes, and writes each recording as a Markdown note.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/murmur/config.toml)")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	cfg, resolvedPath, fromFile, err := config.Load(configPath)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "load", "load configuration", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "ensure directories", "create runtime directories", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if fromFile {
		logger.Info("configuration loaded", logging.String(logging.FieldPath, resolvedPath))
	} else {
		logger.Info("no config file found, using defaults with environment overrides")
	}

	notifier := notifications.NewService(cfg)
	source := watch.NewSource(cfg.Paths.MonitorDir, logger)
	d, err := daemon.New(cfg, source, managerFactory(cfg, notifier, logger), notifier, logger)
	if err != nil {
		return err
	}

	if err := d.Start(ctx); err != nil {
		return err
	}
	waitErr := d.Wait(ctx)
	if waitErr != nil && services.Fatal(waitErr) {
		logger.Error("terminal failure, shutting down", logging.Error(waitErr))
	} else {
		logger.Info("shutting down, letting in-flight jobs finish")
	}
	d.Stop()
	return waitErr
}

// managerFactory wires the pipeline components. The wiring is deferred to a
// factory because the daemon owns the watcher lifecycle and hands over the
// event stream only once watching has started.
func managerFactory(cfg *config.Config, notifier notifications.Service, logger *slog.Logger) daemon.ManagerFactory {
	transcriber := deepgram.NewClient(deepgram.Config{
		APIKey:         cfg.Transcriber.APIKey,
		BaseURL:        cfg.Transcriber.BaseURL,
		Model:          cfg.Transcriber.Model,
		Language:       cfg.Transcriber.Language,
		TimeoutSeconds: cfg.Transcriber.TimeoutSeconds,
	})
	summarizer := llm.NewClient(llm.Config{
		APIKey:         cfg.Summarizer.APIKey,
		BaseURL:        cfg.Summarizer.BaseURL,
		Model:          cfg.Summarizer.Model,
		TimeoutSeconds: cfg.Summarizer.TimeoutSeconds,
	})
	detector := stability.New(
		time.Duration(cfg.Stability.PollIntervalMS)*time.Millisecond,
		time.Duration(cfg.Stability.QuietPeriodMS)*time.Millisecond,
		time.Duration(cfg.Stability.TimeoutSeconds)*time.Second,
		logger,
	)
	writer := notes.NewWriter(cfg.Paths.NotesDir, logger)
	prompter := prompt.NewTerminal(os.Stdin, os.Stdout, prompt.NewExecPlayer(), logger)
	processor := workflow.NewProcessor(detector, transcriber, summarizer, writer, notifier, logger)

	return func(events <-chan watch.PathEvent) *workflow.Manager {
		q := queue.New(cfg.Ingest.QueueCapacity, logger)
		return workflow.NewManager(cfg, q, events, prompter, processor, logger)
	}
}
