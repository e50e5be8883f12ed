package metrics

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRegisterMetricsTwice(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	StateCommitCounter.WithLabelValues("test").Inc()
	m := &dto.Metric{}
	if err := StateCommitCounter.WithLabelValues("test").Write(m); err != nil {
		t.Fatal(err)
	}
	if m.GetCounter().GetValue() != 1 {
		t.Fatalf("expect 1 got %v", m.GetCounter().GetValue())
	}

	mfs, err := prom.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "xcontrol_state_commit_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("state commit metric not registered")
	}
}
