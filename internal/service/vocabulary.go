package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"core/internal/cache"
	"core/internal/utils"
)

const vocabularyCacheKey = "vocabulary:localities"

// VocabularyLoader resolves the locality vocabulary, preferring the cache
type VocabularyLoader struct {
	client AnalyticsClient
	cache  cache.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewVocabularyLoader creates a loader; cache may be nil
func NewVocabularyLoader(client AnalyticsClient, c cache.Client, ttl time.Duration, logger zerolog.Logger) *VocabularyLoader {
	return &VocabularyLoader{
		client: client,
		cache:  c,
		ttl:    ttl,
		logger: logger.With().Str("component", "vocabulary").Logger(),
	}
}

// Load returns the cleaned vocabulary. It never fails: when the backend
// cannot be reached the vocabulary is empty and matching finds nothing.
func (l *VocabularyLoader) Load(ctx context.Context) []string {
	if vocab, ok := l.fromCache(ctx); ok {
		return vocab
	}

	raw, err := l.client.Localities(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("locality vocabulary unavailable, continuing with empty vocabulary")
		return []string{}
	}

	vocab := utils.CleanVocabulary(raw)
	l.store(ctx, vocab)
	return vocab
}

// Invalidate drops the cached vocabulary
func (l *VocabularyLoader) Invalidate(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}
	return l.cache.Delete(ctx, vocabularyCacheKey)
}

func (l *VocabularyLoader) fromCache(ctx context.Context) ([]string, bool) {
	if l.cache == nil {
		return nil, false
	}

	data, err := l.cache.Get(ctx, vocabularyCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn().Err(err).Msg("vocabulary cache read failed")
		}
		return nil, false
	}

	var vocab []string
	if err := json.Unmarshal(data, &vocab); err != nil {
		l.logger.Warn().Err(err).Msg("discarding corrupt cached vocabulary")
		return nil, false
	}
	return vocab, true
}

func (l *VocabularyLoader) store(ctx context.Context, vocab []string) {
	// an empty list is not cached so the next session retries the backend
	if l.cache == nil || len(vocab) == 0 {
		return
	}

	data, err := json.Marshal(vocab)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, vocabularyCacheKey, data, l.ttl); err != nil {
		l.logger.Warn().Err(err).Msg("vocabulary cache write failed")
	}
}
