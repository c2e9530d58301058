package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"mailtriage/internal/application/triage"
	domain "mailtriage/internal/domain/triage"
	"mailtriage/internal/infrastructure/config"
	"mailtriage/internal/infrastructure/gmail"
	"mailtriage/internal/infrastructure/llm"
	"mailtriage/internal/infrastructure/persistence/sqlite"
	"mailtriage/internal/infrastructure/pubsub"
	"mailtriage/internal/interfaces/cli"
	pubsubHandler "mailtriage/internal/interfaces/pubsub"
	"mailtriage/internal/interfaces/worker"
)

type options struct {
	maxEmails int64
	watch     bool
	reportDB  string
	quiet     bool
}

func main() {
	var opts options
	flag.Int64VarP(&opts.maxEmails, "max", "n", 0, "Number of inbox emails to triage (default MAX_EMAILS)")
	flag.BoolVarP(&opts.watch, "watch", "w", false, "Keep running and triage new mail from Gmail push notifications")
	flag.StringVar(&opts.reportDB, "report-db", "", "SQLite file that archives every run (default REPORT_DB_PATH)")
	flag.BoolVarP(&opts.quiet, "quiet", "q", false, "Print only category statistics")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Printf("Error processing emails: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.maxEmails > 0 {
		cfg.MaxEmails = opts.maxEmails
	}
	if opts.reportDB != "" {
		cfg.ReportDBPath = opts.reportDB
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	llmClient, err := llm.NewClient(cfg.OpenAIAPIKey, cfg.ModelName, cfg.OpenAIBaseURL)
	if err != nil {
		return fmt.Errorf("create LLM client: %w", err)
	}

	gmailService, err := gmail.NewService(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return fmt.Errorf("create Gmail service: %w", err)
	}
	gmailClient := gmail.NewClient(gmailService, cfg.GmailUser)

	flagger := triage.NewFlagger(gmailClient, cfg.HumanLabelName)
	if err := flagger.Prepare(ctx); err != nil {
		return fmt.Errorf("prepare labels: %w", err)
	}

	var recorder triage.RunRecorder
	if cfg.ReportDBPath != "" {
		repo, err := sqlite.Open(ctx, cfg.ReportDBPath)
		if err != nil {
			return fmt.Errorf("open report store: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				log.Printf("Failed to close report store: %v", err)
			}
		}()
		recorder = repo
	}

	uc := triage.NewTriageUseCase(gmailClient, llmClient, flagger, recorder)
	printer := cli.NewPrinter(os.Stdout)
	printReport := func(report *domain.RunReport) {
		if opts.quiet {
			printer.PrintStats(report.Stats)
			return
		}
		printer.PrintRun(report)
	}

	report, err := uc.Run(ctx, cfg.MaxEmails)
	printReport(report)
	if err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}
	return watch(ctx, cfg, gmailClient, uc, printReport)
}

func watch(
	ctx context.Context,
	cfg *config.Config,
	gmailClient *gmail.Client,
	uc *triage.TriageUseCase,
	onReport func(*domain.RunReport),
) error {
	if err := cfg.ValidateWatch(); err != nil {
		return fmt.Errorf("watch mode: %w", err)
	}

	historyID, err := gmailClient.EnableWatch(ctx, cfg.TopicName)
	if err != nil {
		return fmt.Errorf("enable watch: %w", err)
	}
	log.Printf("Watching inbox from historyID: %d", historyID)

	queue := worker.NewQueue(uc, onReport)
	queue.Start(ctx)
	defer queue.Shutdown()

	subscriber, err := pubsub.NewSubscriber(ctx, cfg.GoogleCloudProject, cfg.SubscriptionID)
	if err != nil {
		return err
	}
	defer func() {
		if err := subscriber.Close(); err != nil {
			log.Printf("Failed to close subscriber: %v", err)
		}
	}()

	handler := pubsubHandler.NewHandler(queue, gmailClient, historyID)

	log.Println("Mail triage is watching the inbox. Press Ctrl+C to stop.")

	err = subscriber.Listen(ctx, func(ctx context.Context, n pubsub.Notification) {
		handler.HandleNotification(ctx, n.HistoryID)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("pubsub listener: %w", err)
	}

	log.Println("Shutting down gracefully...")
	return nil
}
