package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TurnRecord is the audit row written for each processed turn
type TurnRecord struct {
	ID             int64          `db:"id" json:"id"`
	SessionID      string         `db:"session_id" json:"session_id"`
	Message        string         `db:"message" json:"message"`
	EnrichedQuery  string         `db:"enriched_query" json:"enriched_query"`
	Intent         IntentClass    `db:"intent" json:"intent"`
	Analysis       AnalysisIntent `db:"analysis" json:"analysis"`
	Metric         Metric         `db:"metric" json:"metric"`
	Areas          []string       `db:"areas" json:"areas"`
	BackendAreas   JSONArray      `db:"backend_areas" json:"backend_areas"` // areas the backend reported; nil when the query failed
	MemoryVersion  int            `db:"memory_version" json:"memory_version"`
	Failed         bool           `db:"failed" json:"failed"`
	ResponseTimeMs int            `db:"response_time_ms" json:"response_time_ms"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// JSONArray is a string list stored as a JSONB column
type JSONArray []string

// Value implements driver.Valuer. A nil list is stored as NULL.
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal([]string(j))
}

// Scan implements sql.Scanner
func (j *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(j))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(j))
	default:
		return fmt.Errorf("cannot scan %T into JSONArray", value)
	}
}
