package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"core/internal/metrics"
	"core/internal/model"
	"core/internal/repository"
	"core/internal/session"
)

// FailureMessage is the answer of a turn whose backend query failed
const FailureMessage = "Sorry, I couldn't fetch the analysis right now. Please try again in a moment."

// Turn stream events, in emission order
const (
	EventIntent      = "intent"
	EventEnriched    = "enriched"
	EventQuerying    = "querying"
	EventAnswer      = "answer"
	EventSuggestions = "suggestions"
)

// TurnEventCallback is called for streaming turn events
type TurnEventCallback func(event string, data any) error

// ConversationService runs conversational turns against the analytics backend
type ConversationService struct {
	client AnalyticsClient
	ranker *Ranker
	turns  repository.TurnLogger
	logger zerolog.Logger
}

// NewConversationService creates a new conversation service; turns may be nil
func NewConversationService(
	client AnalyticsClient,
	ranker *Ranker,
	turns repository.TurnLogger,
	logger zerolog.Logger,
) *ConversationService {
	if turns == nil {
		turns = repository.NopTurnLogger{}
	}
	return &ConversationService{
		client: client,
		ranker: ranker,
		turns:  turns,
		logger: logger.With().Str("component", "conversation").Logger(),
	}
}

// ProcessTurn runs one turn on a session. A backend failure is reported in
// the result, never as an error; the error is only set when ctx ends while
// the turn waits for an earlier one on the same session.
func (s *ConversationService) ProcessTurn(ctx context.Context, sess *session.Session, req *model.ChatRequest) (*model.TurnResult, error) {
	return s.run(ctx, sess, req, func(string, any) error { return nil })
}

// ProcessTurnStream runs one turn and reports its progress through callback.
// The error is the callback's; the turn itself is complete either way once
// memory has been committed.
func (s *ConversationService) ProcessTurnStream(ctx context.Context, sess *session.Session, req *model.ChatRequest, callback TurnEventCallback) (*model.TurnResult, error) {
	return s.run(ctx, sess, req, callback)
}

func (s *ConversationService) run(ctx context.Context, sess *session.Session, req *model.ChatRequest, emit TurnEventCallback) (*model.TurnResult, error) {
	startTime := time.Now()

	end, err := sess.BeginTurn(ctx)
	if err != nil {
		return nil, err
	}
	defer end()

	text := strings.TrimSpace(req.Message)
	intent := NewIntentParser(sess.Vocabulary()).Parse(text)

	// Text-derived memory is committed before the backend is asked
	mem := sess.Memory()
	selected := req.Metric
	if selected == "" {
		selected = mem.PreferredMetric
	}
	if selected == "" {
		selected = model.MetricPrice
	}
	mem = UpdateMemory(mem, Turn{Areas: intent.Areas, SelectedMetric: selected})
	sess.Commit(mem)

	enriched := Enrich(text, intent.Areas, mem)

	result := &model.TurnResult{
		SessionID:     sess.ID,
		Intent:        intent,
		EnrichedQuery: enriched,
		Tone:          model.ToneNeutral,
		RankedAreas:   []model.RankedArea{},
	}

	// Stream errors mean the client went away; the turn still completes
	var streamErr error
	send := func(event string, data any) {
		if streamErr != nil {
			return
		}
		streamErr = emit(event, data)
	}

	send(EventIntent, intent)
	send(EventEnriched, map[string]any{
		"query":  enriched,
		"memory": mem,
	})
	send(EventQuerying, map[string]any{
		"status": "Querying analytics backend...",
	})

	resp, err := s.client.Query(ctx, model.QueryRequest{Message: enriched, Metric: selected})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", sess.ID).
			Msg("backend query failed")

		result.Failed = true
		result.Answer = FailureMessage
		result.Suggestions = Suggestions(text, nil)
		result.FollowUps = FollowUps(intent.Areas, selected, intent.Analysis)
	} else {
		mem = ConfirmYears(mem, resp)
		sess.Commit(mem)

		result.Response = resp
		result.Answer, result.Tone = ShapeAnswer(resp.Summary, text)
		result.RankedAreas = s.ranker.RankAreas(resp.Insights)
		result.Suggestions = Suggestions(text, resp)

		areas := intent.Areas
		if len(areas) == 0 {
			areas = resp.Areas
		}
		result.FollowUps = FollowUps(areas, selected, intent.Analysis)
	}

	result.Memory = mem
	result.Took = time.Since(startTime).Milliseconds()

	send(EventAnswer, map[string]any{
		"answer":       result.Answer,
		"tone":         result.Tone,
		"failed":       result.Failed,
		"response":     result.Response,
		"ranked_areas": result.RankedAreas,
	})
	send(EventSuggestions, map[string]any{
		"suggestions": result.Suggestions,
		"follow_ups":  result.FollowUps,
	})

	metrics.RecordTurn(string(intent.Class), result.Failed, len(intent.Areas), time.Since(startTime))

	s.logger.Info().
		Str("session_id", sess.ID).
		Str("intent", string(intent.Class)).
		Str("analysis", string(intent.Analysis)).
		Strs("areas", intent.Areas).
		Int("memory_version", mem.Version).
		Bool("failed", result.Failed).
		Int64("took_ms", result.Took).
		Msg("turn processed")

	// Log turn (non-blocking)
	rec := &model.TurnRecord{
		SessionID:      sess.ID,
		Message:        text,
		EnrichedQuery:  enriched,
		Intent:         intent.Class,
		Analysis:       intent.Analysis,
		Metric:         selected,
		Areas:          intent.Areas,
		MemoryVersion:  mem.Version,
		Failed:         result.Failed,
		ResponseTimeMs: int(result.Took),
	}
	if result.Response != nil {
		rec.BackendAreas = model.JSONArray(result.Response.Areas)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.turns.LogTurn(ctx, rec); err != nil {
			s.logger.Warn().Err(err).Str("session_id", rec.SessionID).Msg("failed to log turn")
		}
	}()

	return result, streamErr
}

// Interpret is the stateless reading of a text against a vocabulary
func (s *ConversationService) Interpret(vocabulary []string, text string) *model.InterpretResponse {
	return &model.InterpretResponse{
		Intent: NewIntentParser(vocabulary).Parse(text),
		Tone:   DetectTone(text),
	}
}

// Suggest derives suggestions and follow-ups for a finished turn
func (s *ConversationService) Suggest(vocabulary []string, req *model.SuggestionRequest) *model.SuggestionResponse {
	intent := NewIntentParser(vocabulary).Parse(req.Text)

	metric := req.Metric
	if metric == "" {
		metric = intent.Metric
	}

	areas := intent.Areas
	if len(areas) == 0 && req.Response != nil {
		areas = req.Response.Areas
	}

	return &model.SuggestionResponse{
		Suggestions: Suggestions(req.Text, req.Response),
		FollowUps:   FollowUps(areas, metric, intent.Analysis),
	}
}
