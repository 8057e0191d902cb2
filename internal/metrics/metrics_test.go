package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"querysearch/internal/models"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(queriesTotal.WithLabelValues(models.OutcomeFailed))
	bytesBefore := testutil.ToFloat64(outputBytes)

	RecordQuery(models.OutcomeFailed, 150*time.Millisecond, 42)

	if got := testutil.ToFloat64(queriesTotal.WithLabelValues(models.OutcomeFailed)); got != before+1 {
		t.Errorf("queries_total{outcome=failed} = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(outputBytes); got != bytesBefore+42 {
		t.Errorf("output_bytes_total = %v, want %v", got, bytesBefore+42)
	}
}

func TestSetEngineUp(t *testing.T) {
	SetEngineUp(true)
	if got := testutil.ToFloat64(engineUp); got != 1 {
		t.Errorf("engine_up = %v, want 1", got)
	}
	SetEngineUp(false)
	if got := testutil.ToFloat64(engineUp); got != 0 {
		t.Errorf("engine_up = %v, want 0", got)
	}
}

func TestInit_Once(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg)
	// A second call must not panic on duplicate registration.
	Init(reg)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Error("no metric families registered")
	}
}
