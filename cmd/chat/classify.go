package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"core/internal/cache"
	"core/internal/config"
	"core/internal/model"
	"core/internal/service"
)

func newClassifyCmd() *cobra.Command {
	var (
		localities []string
		offline    bool
	)

	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Show how a message is interpreted",
		Long: `Show the intent, analysis label, matched localities, metric, year range
and tone for a message, as JSON. Localities come from the backend unless
--localities is given or --offline is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			vocab := localities
			if len(vocab) == 0 && !offline {
				var err error
				vocab, err = fetchVocabulary(cmd.Context())
				if err != nil {
					return err
				}
			}

			out := struct {
				Intent *model.ParsedIntent `json:"intent"`
				Tone   model.Tone          `json:"tone"`
			}{
				Intent: service.NewIntentParser(vocab).Parse(text),
				Tone:   service.DetectTone(text),
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringSliceVarP(&localities, "localities", "l", nil, "comma-separated locality vocabulary")
	cmd.Flags().BoolVar(&offline, "offline", false, "do not contact the backend")
	return cmd
}

func fetchVocabulary(ctx context.Context) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.Analytics.BaseURL = strings.TrimRight(backendURL, "/")
	}

	client := service.NewHTTPAnalyticsClient(cfg.Analytics, zerolog.Nop())
	return service.NewVocabularyLoader(client, cache.NewMemoryClient(), cfg.VocabularyTTL(), zerolog.Nop()).Load(ctx), nil
}
