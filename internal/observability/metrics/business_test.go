package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordAssetIngested(t *testing.T) {
	tests := []struct {
		name string
		role string
	}{
		{name: "thumbnail", role: "thumbnail"},
		{name: "content image", role: "content"},
		{name: "empty role", role: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordAssetIngested(tt.role)
			})
		})
	}
}

func TestRecordIngestFailure(t *testing.T) {
	for _, stage := range []string{"normalize", "upload"} {
		assert.NotPanics(t, func() {
			RecordIngestFailure(stage)
		})
	}
}

func TestRecordSweep(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		scanned  int
		deleted  int
		failures int
	}{
		{
			name:     "clean run with deletions",
			duration: 2 * time.Second,
			scanned:  120,
			deleted:  7,
			failures: 0,
		},
		{
			name:     "nothing to delete",
			duration: 500 * time.Millisecond,
			scanned:  120,
			deleted:  0,
			failures: 0,
		},
		{
			name:     "partial failures",
			duration: 3 * time.Second,
			scanned:  120,
			deleted:  5,
			failures: 2,
		},
		{
			name:     "empty store",
			duration: 100 * time.Millisecond,
			scanned:  0,
			deleted:  0,
			failures: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSweep(tt.duration, tt.scanned, tt.deleted, tt.failures)
			})
		})
	}
}

func TestRecordSweepError(t *testing.T) {
	for _, cause := range []string{"list_store", "list_references"} {
		assert.NotPanics(t, func() {
			RecordSweepError(cause)
		})
	}
}

func TestRecordNormalizeDuration(t *testing.T) {
	for _, d := range []time.Duration{0, 50 * time.Millisecond, 4 * time.Second} {
		assert.NotPanics(t, func() {
			RecordNormalizeDuration(d)
		})
	}
}

// Metric helpers are fire-and-forget; the only contract worth pinning is
// that concurrent recording never panics.
func TestMetricsConcurrentAccess(t *testing.T) {
	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()
			RecordAssetIngested("thumbnail")
			RecordAssetIngested("content")
			RecordIngestFailure("upload")
			RecordSweep(time.Second, 50, 3, 1)
			RecordSweepError("list_store")
			RecordNormalizeDuration(20 * time.Millisecond)
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
