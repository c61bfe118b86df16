package i

import "time"

// MetricsRecorder receives measurements from the services.
type MetricsRecorder interface {
	ObserveGeneration(height, width int, took time.Duration)
	ObservePath(status string, length int, took time.Duration)
	ObserveRender(bytes int64)
	SetSessions(n int)
	SessionEvicted()
}
