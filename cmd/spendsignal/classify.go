package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendsignal/spendsignal/internal/classify"
	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/config"
	"github.com/spendsignal/spendsignal/internal/dedup"
	"github.com/spendsignal/spendsignal/internal/engine"
	"github.com/spendsignal/spendsignal/internal/model"
	"github.com/spendsignal/spendsignal/internal/storage"
)

func classifyCmd() *cobra.Command {
	var (
		channel string
		app     string
		title   string
		ticker  string
		lines   []string
	)

	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify raw signal text into pending transactions",
		Long: `Classify feeds raw signal text through the ingestion pipeline. Text is
taken from the arguments, or line by line from stdin when no arguments are
given. The accepted candidates are stored as pending transactions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), channel, app, title, ticker, lines, args)
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "sms", "signal channel (sms, notification, accessibility)")
	cmd.Flags().StringVar(&app, "app", "", "source app package for notification/accessibility signals")
	cmd.Flags().StringVar(&title, "title", "", "notification title")
	cmd.Flags().StringVar(&ticker, "ticker", "", "notification ticker text")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "bundled notification line (repeatable)")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println(acceptedStyle.Render("✓ Database migrated"))
			return nil
		},
	}
}

func runClassify(ctx context.Context, channel, app, title, ticker string, lines, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	path, err := databasePath()
	if err != nil {
		return err
	}
	cache, err := dedup.OpenBoltNameCache(config.CachePathFor(path), common.RealClock{}, 0)
	if err != nil {
		return fmt.Errorf("failed to open processed-name cache: %w", err)
	}
	defer func() { _ = cache.Close() }()

	pipeline := engine.New(common.RealClock{}, store, store, cache)
	clock := common.RealClock{}

	texts := []string{strings.Join(args, " ")}
	if len(args) == 0 {
		texts = nil
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				texts = append(texts, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	for _, text := range texts {
		switch channel {
		case "sms":
			verdict, candidate := pipeline.HandleSMS(ctx, text, clock.Now())
			printVerdict(verdict, candidate)
		case "notification":
			verdict, candidates := pipeline.HandleNotification(ctx, model.Notification{
				ObservedAt: clock.Now(),
				Package:    app,
				Title:      title,
				Ticker:     ticker,
				Text:       text,
				Lines:      lines,
			})
			if len(candidates) == 0 {
				printVerdict(verdict, nil)
			}
			for i := range candidates {
				printVerdict(verdict, &candidates[i])
			}
		case "accessibility":
			pipeline.HandleAccessibility(model.RawSignal{
				ObservedAt: clock.Now(),
				Channel:    model.ChannelAccessibility,
				SourceApp:  app,
				Text:       text,
			})
			fmt.Println(subtleStyle.Render("observed"))
		default:
			return common.NewUserError(
				fmt.Sprintf("unknown channel %q, expected sms, notification, or accessibility", channel), nil)
		}
	}

	return nil
}

func printVerdict(verdict classify.Verdict, candidate *model.TransactionCandidate) {
	switch verdict {
	case classify.VerdictAccepted:
		line := fmt.Sprintf("✓ %s %.2f (%s)", candidate.Direction, candidate.Amount, candidate.Source)
		if candidate.Merchant != "" {
			line += " " + candidate.Merchant
		}
		if candidate.Split != nil {
			line += fmt.Sprintf(" [split %d/%d of %.2f]",
				candidate.Split.Numerator, candidate.Split.Denominator, candidate.Split.TotalAmount)
		}
		fmt.Println(acceptedStyle.Render(line))
	case classify.VerdictSuppressed:
		fmt.Println(suppressedStyle.Render("~ duplicate suppressed"))
	default:
		fmt.Println(rejectedStyle.Render("✗ rejected"))
	}
}

func openStorage() (*storage.SQLiteStorage, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}
