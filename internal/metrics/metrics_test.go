package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTurn(t *testing.T) {
	before := testutil.ToFloat64(turnsTotal.WithLabelValues("investment", OutcomeFailed))

	RecordTurn("investment", true, 2, 150*time.Millisecond)

	after := testutil.ToFloat64(turnsTotal.WithLabelValues("investment", OutcomeFailed))
	assert.Equal(t, before+1, after)
}

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(activeSessions))
}
