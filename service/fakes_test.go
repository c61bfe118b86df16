package service

import (
	"context"
	"errors"
	"image"
	"io"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
)

type recordingLogger struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type memoryRenderRepo struct {
	records []*dmn.RenderRecord
	failing bool
}

func (r *memoryRenderRepo) Save(record *dmn.RenderRecord) error {
	if r.failing {
		return errors.New("catalog unavailable")
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memoryRenderRepo) BySession(id uuid.UUID) ([]*dmn.RenderRecord, error) {
	out := []*dmn.RenderRecord{}
	for idx := len(r.records) - 1; idx >= 0; idx-- {
		if r.records[idx].SessionID == id {
			out = append(out, r.records[idx])
		}
	}
	return out, nil
}

// failingEncoder writes a few bytes and then gives up.
type failingEncoder struct {
	i.Renderer
}

func (failingEncoder) Encode(w io.Writer, _ image.Image) error {
	_, _ = w.Write([]byte("\x89PNG"))
	return errors.New("encoder gave up")
}

type memorySortedQueue struct {
	members map[string]map[string]float64
}

func newMemorySortedQueue() *memorySortedQueue {
	return &memorySortedQueue{members: map[string]map[string]float64{}}
}

func (q *memorySortedQueue) Enqueue(_ context.Context, key string, score float64, member string) error {
	if q.members[key] == nil {
		q.members[key] = map[string]float64{}
	}
	q.members[key][member] = score
	return nil
}

func (q *memorySortedQueue) DequeTops(_ context.Context, key string, amount int64) ([]string, error) {
	set := q.members[key]
	names := make([]string, 0, len(set))
	for m := range set {
		names = append(names, m)
	}
	sort.Slice(names, func(a, b int) bool { return set[names[a]] < set[names[b]] })
	if int64(len(names)) > amount {
		names = names[:amount]
	}
	for _, m := range names {
		delete(set, m)
	}
	return names, nil
}

func (q *memorySortedQueue) Count(_ context.Context, key string) int64 {
	return int64(len(q.members[key]))
}

type countingMetrics struct {
	generations int
	paths       map[string]int
	renders     int
	sessions    int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{paths: map[string]int{}}
}

func (m *countingMetrics) ObserveGeneration(int, int, time.Duration) { m.generations++ }

func (m *countingMetrics) ObservePath(status string, _ int, _ time.Duration) { m.paths[status]++ }

func (m *countingMetrics) ObserveRender(int64) { m.renders++ }

func (m *countingMetrics) SetSessions(n int) { m.sessions = n }

func (m *countingMetrics) SessionEvicted() { m.sessions-- }
