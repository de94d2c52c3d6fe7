package model

import "time"

// ChatRequest represents one user message submitted to a session
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Metric  Metric `json:"metric,omitempty"` // state of the metric control; empty keeps the session's
}

// TurnResult is everything one conversational turn yields to the presentation layer
type TurnResult struct {
	SessionID     string             `json:"session_id"`
	Intent        *ParsedIntent      `json:"intent"`
	EnrichedQuery string             `json:"enriched_query"`
	Answer        string             `json:"answer"`
	Tone          Tone               `json:"tone"`
	Suggestions   []string           `json:"suggestions"`
	FollowUps     []string           `json:"follow_ups"`
	RankedAreas   []RankedArea       `json:"ranked_areas,omitempty"`
	Response      *AnalyticsResponse `json:"response,omitempty"`
	Memory        SessionMemory      `json:"memory"`
	Failed        bool               `json:"failed"`
	Took          int64              `json:"took_ms"` // Response time in milliseconds
}

// SessionInfo describes a live session
type SessionInfo struct {
	SessionID     string        `json:"session_id"`
	CreatedAt     time.Time     `json:"created_at"`
	LastActive    time.Time     `json:"last_active"`
	LocalityCount int           `json:"locality_count"`
	Memory        SessionMemory `json:"memory"`
}

// InterpretRequest asks for a stateless reading of a text
type InterpretRequest struct {
	Text string `json:"text" binding:"required"`
}

// InterpretResponse is the stateless reading of a text
type InterpretResponse struct {
	Intent *ParsedIntent `json:"intent"`
	Tone   Tone          `json:"tone"`
}

// SuggestionRequest asks for suggestions derived from a finished turn
type SuggestionRequest struct {
	Text     string             `json:"text" binding:"required"`
	Response *AnalyticsResponse `json:"response,omitempty"`
	Metric   Metric             `json:"metric,omitempty"`
}

// SuggestionResponse carries suggestions and follow-ups
type SuggestionResponse struct {
	Suggestions []string `json:"suggestions"`
	FollowUps   []string `json:"follow_ups"`
}
