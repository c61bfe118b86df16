package sessionstore

import (
	"testing"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/metrics"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *dmn.Session {
	t.Helper()
	g, err := maze.New(2, 2)
	require.NoError(t, err)
	return dmn.NewSession(g)
}

func TestLRUStore(t *testing.T) {
	t.Run("Save and ByID", func(t *testing.T) {
		store, err := NewLRUStore(4, time.Minute, nil)
		require.NoError(t, err)

		s := newSession(t)
		store.Save(s)

		got, ok := store.ByID(s.ID)
		assert.True(t, ok)
		assert.Same(t, s, got)
		assert.Equal(t, 1, store.Len())

		_, ok = store.ByID(uuid.New())
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		var evicted []uuid.UUID
		store, err := NewLRUStore(2, time.Minute, func(id uuid.UUID) {
			evicted = append(evicted, id)
		})
		require.NoError(t, err)

		a, b, c := newSession(t), newSession(t), newSession(t)
		store.Save(a)
		store.Save(b)
		_, _ = store.ByID(a.ID)
		store.Save(c)

		_, ok := store.ByID(b.ID)
		assert.False(t, ok)
		assert.Equal(t, []uuid.UUID{b.ID}, evicted)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("Delete", func(t *testing.T) {
		store, _ := NewLRUStore(2, time.Minute, nil)
		s := newSession(t)
		store.Save(s)
		store.Delete(s.ID)
		_, ok := store.ByID(s.ID)
		assert.False(t, ok)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		store, _ := NewLRUStore(2, 20*time.Millisecond, nil)
		s := newSession(t)
		store.Save(s)
		assert.Eventually(t, func() bool {
			_, ok := store.ByID(s.ID)
			return !ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("reads do not extend the ttl", func(t *testing.T) {
		store, _ := NewLRUStore(2, 80*time.Millisecond, nil)
		s := newSession(t)
		store.Save(s)
		assert.Eventually(t, func() bool {
			_, ok := store.ByID(s.ID)
			return !ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("evictions keep the sessions gauge current", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		recorder := metrics.NewRecorder(reg)
		store, err := NewLRUStore(2, 200*time.Millisecond, func(uuid.UUID) {
			recorder.SessionEvicted()
		})
		require.NoError(t, err)
		gauge := func() float64 {
			families, err := reg.Gather()
			if err != nil {
				return -1
			}
			for _, mf := range families {
				if mf.GetName() == "labyrinth_sessions_active" {
					return mf.GetMetric()[0].GetGauge().GetValue()
				}
			}
			return -1
		}

		for range 3 {
			store.Save(newSession(t))
			recorder.SetSessions(store.Len())
		}
		assert.Equal(t, 2.0, gauge(), "one session pushed out by size")

		assert.Eventually(t, func() bool {
			return gauge() == 0
		}, 2*time.Second, 10*time.Millisecond, "remaining sessions expire")
		assert.Zero(t, store.Len())
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		_, err := NewLRUStore(0, time.Minute, nil)
		assert.Error(t, err)
		_, err = NewLRUStore(1, 0, nil)
		assert.Error(t, err)
	})
}
