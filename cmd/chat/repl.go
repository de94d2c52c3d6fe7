package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"core/internal/cache"
	"core/internal/config"
	"core/internal/logging"
	"core/internal/model"
	"core/internal/service"
	"core/internal/session"
)

func newREPLCmd() *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation with the analytics backend.

Commands inside the session:
  /metric <price|demand|both>   switch the metric
  /memory                       show what the session remembers
  /quit                         end the session`,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, ok := model.ParseMetric(metric)
			if !ok {
				return fmt.Errorf("invalid metric %q: must be price, demand or both", metric)
			}
			return runREPL(cmd.Context(), selected)
		},
	}

	cmd.Flags().StringVarP(&metric, "metric", "m", string(model.MetricPrice), "initial metric: price, demand or both")
	return cmd
}

func runREPL(ctx context.Context, metric model.Metric) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if backendURL != "" {
		cfg.Analytics.BaseURL = strings.TrimRight(backendURL, "/")
	}

	logger := zerolog.Nop()
	if verbose {
		cfg.Logging.Format = "console"
		cfg.Logging.Level = "debug"
		logger = logging.NewWithWriter(cfg.Logging, "chat", os.Stderr)
	}

	ui := NewUI(os.Stdout, noColor)

	client := service.NewHTTPAnalyticsClient(cfg.Analytics, logger)
	vocabulary := service.NewVocabularyLoader(client, cache.NewMemoryClient(), cfg.VocabularyTTL(), logger)
	conversation := service.NewConversationService(client, service.NewRanker(
		cfg.Ranking.WeightGrowth,
		cfg.Ranking.WeightDemand,
		cfg.Ranking.WeightRisk,
	), nil, logger)

	vocab := vocabulary.Load(ctx)
	if len(vocab) == 0 {
		ui.Warn("no localities loaded from %s, locality matching is off", cfg.Analytics.BaseURL)
	} else {
		ui.Info("%d localities loaded from %s", len(vocab), cfg.Analytics.BaseURL)
	}

	sess, err := session.NewStore(0, 1).Create(vocab)
	if err != nil {
		return err
	}

	ui.Info("Ask about locality prices, demand or trends. /quit to exit.\n")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		ui.Prompt(metric)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, next := handleCommand(ui, sess, line, metric)
			if quit {
				return nil
			}
			metric = next
			continue
		}

		result, err := conversation.ProcessTurn(ctx, sess, &model.ChatRequest{Message: line, Metric: metric})
		if err != nil {
			return err
		}
		ui.Turn(result, verbose)
	}

	return scanner.Err()
}

// handleCommand runs a slash command and returns whether to quit and the metric to use next
func handleCommand(ui *UI, sess *session.Session, line string, metric model.Metric) (bool, model.Metric) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, metric
	case "/memory":
		ui.Memory(sess.Memory())
	case "/metric":
		if len(fields) < 2 {
			ui.Warn("usage: /metric <price|demand|both>")
			break
		}
		next, ok := model.ParseMetric(strings.ToLower(fields[1]))
		if !ok {
			ui.Warn("unknown metric %q", fields[1])
			break
		}
		return false, next
	default:
		ui.Warn("unknown command %s", fields[0])
	}
	return false, metric
}
