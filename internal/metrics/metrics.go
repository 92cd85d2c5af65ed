package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы API инструментов",
		},
		[]string{"service", "endpoint", "status"},
	)

	// CalculationDuration время построения графика платежей
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculation_duration_seconds",
			Help:    "Длительность расчета графика платежей",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"tool_name"},
	)

	// StoreOperations счетчик операций с хранилищем результатов
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_store_operations_total",
			Help: "Операции с хранилищем рассчитанных графиков",
		},
		[]string{"backend", "operation", "status"},
	)
)

// ObserveCalculation записывает длительность расчета
func ObserveCalculation(toolName string, d time.Duration) {
	CalculationDuration.WithLabelValues(toolName).Observe(d.Seconds())
}

// ToolStats - накопленная статистика вызовов одного инструмента
type ToolStats struct {
	Success         float64 `json:"success"`
	ValidationError float64 `json:"validation_error"`
	Error           float64 `json:"error"`
}

// Snapshot возвращает текущие значения счетчика ToolCalls по каждому инструменту
func Snapshot(toolNames ...string) map[string]ToolStats {
	out := make(map[string]ToolStats, len(toolNames))
	for _, name := range toolNames {
		out[name] = ToolStats{
			Success:         counterValue(ToolCalls, name, "success"),
			ValidationError: counterValue(ToolCalls, name, "validation_error"),
			Error:           counterValue(ToolCalls, name, "error"),
		}
	}
	return out
}

// counterValue читает текущее значение счетчика с заданными метками
func counterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	m := &dto.Metric{}
	if err := cv.WithLabelValues(labels...).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
