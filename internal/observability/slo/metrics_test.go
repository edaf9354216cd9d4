package slo

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &io_prometheus_client.Metric{}
	if err := g.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.GetGauge().GetValue()
}

func TestSLOConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"AvailabilitySLO", AvailabilitySLO, 99.9},
		{"LatencyP95SLO", LatencyP95SLO, 0.200},
		{"LatencyP99SLO", LatencyP99SLO, 0.500},
		{"ErrorRateSLO", ErrorRateSLO, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.value, tt.expected)
			}
		})
	}
}

func TestUpdateGauges(t *testing.T) {
	UpdateAvailability(0.9995)
	UpdateLatencyP95(0.150)
	UpdateLatencyP99(0.450)
	UpdateErrorRate(0.0005)

	if got := gaugeValue(t, SLOAvailability); got != 0.9995 {
		t.Errorf("SLOAvailability = %v, want 0.9995", got)
	}
	if got := gaugeValue(t, SLOLatencyP95); got != 0.150 {
		t.Errorf("SLOLatencyP95 = %v, want 0.150", got)
	}
	if got := gaugeValue(t, SLOLatencyP99); got != 0.450 {
		t.Errorf("SLOLatencyP99 = %v, want 0.450", got)
	}
	if got := gaugeValue(t, SLOErrorRate); got != 0.0005 {
		t.Errorf("SLOErrorRate = %v, want 0.0005", got)
	}
}

func TestTracker_Flush(t *testing.T) {
	tracker := NewTracker()

	// 100 requests, 2 server errors, ascending latencies 1ms..100ms.
	for i := 1; i <= 100; i++ {
		status := 200
		if i <= 2 {
			status = 500
		}
		tracker.Observe(status, float64(i)/1000)
	}

	tracker.Flush()

	if got := gaugeValue(t, SLOAvailability); got != 0.98 {
		t.Errorf("availability = %v, want 0.98", got)
	}
	if got := gaugeValue(t, SLOErrorRate); got != 0.02 {
		t.Errorf("error rate = %v, want 0.02", got)
	}
	if got := gaugeValue(t, SLOLatencyP95); got != 0.095 {
		t.Errorf("p95 = %v, want 0.095", got)
	}
	if got := gaugeValue(t, SLOLatencyP99); got != 0.099 {
		t.Errorf("p99 = %v, want 0.099", got)
	}
}

func TestTracker_FlushEmptyWindowLeavesGauges(t *testing.T) {
	UpdateAvailability(0.98)
	UpdateErrorRate(0.02)

	NewTracker().Flush()

	if got := gaugeValue(t, SLOAvailability); got != 0.98 {
		t.Errorf("availability = %v, want unchanged 0.98", got)
	}
	if got := gaugeValue(t, SLOErrorRate); got != 0.02 {
		t.Errorf("error rate = %v, want unchanged 0.02", got)
	}
}

func TestTracker_FlushResetsWindow(t *testing.T) {
	tracker := NewTracker()
	tracker.Observe(500, 0.010)
	tracker.Flush()

	if got := gaugeValue(t, SLOAvailability); got != 0 {
		t.Errorf("availability = %v, want 0", got)
	}

	// Second window is all successes; the failed window must not bleed in.
	tracker.Observe(200, 0.010)
	tracker.Flush()

	if got := gaugeValue(t, SLOAvailability); got != 1 {
		t.Errorf("availability = %v, want 1", got)
	}
}

func TestTracker_ConcurrentObserve(t *testing.T) {
	tracker := NewTracker()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				tracker.Observe(200, 0.005)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	tracker.Flush()

	if got := gaugeValue(t, SLOAvailability); got != 1 {
		t.Errorf("availability = %v, want 1", got)
	}
	if got := gaugeValue(t, SLOLatencyP99); got != 0.005 {
		t.Errorf("p99 = %v, want 0.005", got)
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.95, 0},
		{"single", []float64{0.1}, 0.99, 0.1},
		{"median", []float64{0.1, 0.2, 0.3, 0.4}, 0.5, 0.2},
		{"p99 small set", []float64{0.1, 0.2, 0.3}, 0.99, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSLOTargetsAreReasonable(t *testing.T) {
	if AvailabilitySLO < 90.0 || AvailabilitySLO > 100.0 {
		t.Errorf("AvailabilitySLO = %v, should be between 90 and 100", AvailabilitySLO)
	}
	if LatencyP95SLO <= 0 || LatencyP95SLO > 1.0 {
		t.Errorf("LatencyP95SLO = %v, should be between 0 and 1 second", LatencyP95SLO)
	}
	if LatencyP99SLO <= LatencyP95SLO || LatencyP99SLO > 2.0 {
		t.Errorf("LatencyP99SLO = %v, should be greater than P95 (%v) and less than 2 seconds",
			LatencyP99SLO, LatencyP95SLO)
	}
	if ErrorRateSLO < 0 || ErrorRateSLO > 0.01 {
		t.Errorf("ErrorRateSLO = %v, should be between 0 and 0.01 (1%%)", ErrorRateSLO)
	}
}
