package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"core/internal/model"
)

func TestStore_CreateGetDelete(t *testing.T) {
	st := NewStore(time.Hour, 0)

	s, err := st.Create([]string{"Wakad", "Aundh"})
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	mem := s.Memory()
	assert.Equal(t, 0, mem.Version)
	assert.Equal(t, model.MetricPrice, mem.PreferredMetric)
	assert.Empty(t, mem.Localities)

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 2, got.Info().LocalityCount)

	require.NoError(t, st.Delete(s.ID))
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, st.Delete(s.ID), ErrSessionNotFound)
}

func TestStore_NilVocabularyIsEmpty(t *testing.T) {
	st := NewStore(time.Hour, 0)
	s, err := st.Create(nil)
	require.NoError(t, err)
	assert.NotNil(t, s.Vocabulary())
	assert.Empty(t, s.Vocabulary())
}

func TestStore_ExpiresIdleSessions(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewStore(30*time.Minute, 0)
	st.now = func() time.Time { return now }

	idle, err := st.Create(nil)
	require.NoError(t, err)
	active, err := st.Create(nil)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, err = st.Get(active.ID)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, err = st.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = st.Get(active.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, st.Len())
}

func TestStore_MaxSessions(t *testing.T) {
	st := NewStore(time.Hour, 1)
	_, err := st.Create(nil)
	require.NoError(t, err)

	_, err = st.Create(nil)
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestSession_CommitIgnoresStaleSnapshots(t *testing.T) {
	st := NewStore(time.Hour, 0)
	s, err := st.Create(nil)
	require.NoError(t, err)

	newer := model.NewSessionMemory()
	newer.Version = 2
	newer.Localities = []string{"Wakad", "Aundh"}
	s.Commit(newer)

	stale := model.NewSessionMemory()
	stale.Version = 1
	stale.Localities = []string{"Wakad"}
	s.Commit(stale)

	assert.Equal(t, []string{"Wakad", "Aundh"}, s.Memory().Localities)
}

func TestSession_MemoryIsACopy(t *testing.T) {
	st := NewStore(time.Hour, 0)
	s, err := st.Create(nil)
	require.NoError(t, err)

	mem := s.Memory()
	mem.Localities = append(mem.Localities, "Baner")
	assert.Empty(t, s.Memory().Localities)
}

func TestSession_TurnsAreSerialized(t *testing.T) {
	st := NewStore(time.Hour, 0)
	s, err := st.Create(nil)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		running int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			end, err := s.BeginTurn(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			defer end()

			mu.Lock()
			running++
			if running > maxSeen {
				maxSeen = running
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestSession_BeginTurnHonoursContext(t *testing.T) {
	st := NewStore(time.Hour, 0)
	s, err := st.Create(nil)
	require.NoError(t, err)

	end, err := s.BeginTurn(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.BeginTurn(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	timeout, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelTimeout()
	_, err = s.BeginTurn(timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	end()
	next, err := s.BeginTurn(context.Background())
	require.NoError(t, err, "the slot is free again once the running turn ends")
	next()
}
