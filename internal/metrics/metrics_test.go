package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	const tool = "snapshot_test_tool"

	before := Snapshot(tool)[tool]

	ToolCalls.WithLabelValues(tool, "success").Inc()
	ToolCalls.WithLabelValues(tool, "success").Inc()
	ToolCalls.WithLabelValues(tool, "validation_error").Inc()

	after := Snapshot(tool)[tool]
	assert.Equal(t, before.Success+2, after.Success)
	assert.Equal(t, before.ValidationError+1, after.ValidationError)
	assert.Equal(t, before.Error, after.Error)
}

func TestSnapshot_UnknownTool(t *testing.T) {
	assert.Equal(t, ToolStats{}, Snapshot("never_called_tool")["never_called_tool"])
}

func sampleCount(t *testing.T, tool string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, CalculationDuration.WithLabelValues(tool).(prometheus.Metric).Write(m))
	return m.GetHistogram().GetSampleCount()
}

func TestObserveCalculation(t *testing.T) {
	const tool = "observe_test_tool"

	before := sampleCount(t, tool)
	ObserveCalculation(tool, 50*time.Microsecond)
	assert.Equal(t, before+1, sampleCount(t, tool))
}
