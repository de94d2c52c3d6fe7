package repository

import (
	"context"
	"strings"
	"testing"

	"core/internal/model"
)

func TestNopTurnLogger(t *testing.T) {
	var logger TurnLogger = NopTurnLogger{}
	if err := logger.LogTurn(context.Background(), &model.TurnRecord{SessionID: "s"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

// TestSchema_MatchesInsert keeps the insert column list in step with the table
func TestSchema_MatchesInsert(t *testing.T) {
	columns := []string{
		"session_id", "message", "enriched_query", "intent", "analysis",
		"metric", "areas", "backend_areas", "memory_version", "failed", "response_time_ms",
	}
	for _, col := range columns {
		if !strings.Contains(Schema, "\t"+col+" ") {
			t.Errorf("Schema is missing column %q", col)
		}
	}
}
