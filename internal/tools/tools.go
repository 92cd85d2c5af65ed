package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/estate-loan-calculator/internal/calculations"
	"github.com/cloud-ru/estate-loan-calculator/internal/config"
	"github.com/cloud-ru/estate-loan-calculator/internal/metrics"
	"github.com/cloud-ru/estate-loan-calculator/internal/validators"
)

const (
	ToolLoanSchedule         = "loan_schedule"
	ToolCompareLoanSchedules = "compare_loan_schedules"
)

// ErrNoResult возвращается, если калькулятор не смог построить график
var ErrNoResult = errors.New("расчет не выполнен: недостаточно входных данных")

// ErrUnknownTool возвращается для незарегистрированного имени инструмента
var ErrUnknownTool = errors.New("unknown tool")

// ScheduleOutput - результат инструмента loan_schedule вместе с нормализованными
// входными данными: подставленными значениями по умолчанию и ограниченным сроком
type ScheduleOutput struct {
	Input  calculations.LoanInput           `json:"input"`
	Result *calculations.AmortizationResult `json:"result"`
}

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry содержит обработчики инструментов по имени
type Registry map[string]ToolHandler

// NewRegistry регистрирует все инструменты калькулятора
func NewRegistry(cfg *config.Config, tracer trace.Tracer) Registry {
	return Registry{
		ToolLoanSchedule:         LoanScheduleHandler(cfg, tracer),
		ToolCompareLoanSchedules: CompareLoanSchedulesHandler(cfg, tracer),
	}
}

// Names возвращает отсортированные имена инструментов
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call вызывает инструмент по имени
func (r Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	h, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return h(ctx, params)
}

// LoanScheduleHandler обрабатывает запрос на расчет графика платежей
func LoanScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		c := startCall(ctx, tracer, ToolLoanSchedule)
		defer c.span.End()

		in, err := prepareInput(cfg, c, params)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		result := calculations.ComputeSchedule(in)
		metrics.ObserveCalculation(ToolLoanSchedule, time.Since(start))
		if result == nil {
			return nil, c.fail("calculation", ErrNoResult)
		}

		c.span.SetAttributes(
			attribute.Float64("monthly_payment", result.MonthlyPayment),
			attribute.Float64("total_payment", result.TotalPayment),
		)
		c.succeed()

		return &ScheduleOutput{Input: in, Result: result.Rounded()}, nil
	}
}

// CompareLoanSchedulesHandler обрабатывает запрос на сравнение схем погашения
func CompareLoanSchedulesHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		c := startCall(ctx, tracer, ToolCompareLoanSchedules)
		defer c.span.End()

		in, err := prepareInput(cfg, c, params)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		result := calculations.CompareMethods(in)
		metrics.ObserveCalculation(ToolCompareLoanSchedules, time.Since(start))
		if result == nil {
			return nil, c.fail("calculation", ErrNoResult)
		}

		result.AnnuitySchedule = result.AnnuitySchedule.Rounded()
		result.EqualPrincipalSchedule = result.EqualPrincipalSchedule.Rounded()

		c.span.SetAttributes(attribute.String("cheaper_method", string(result.Difference.CheaperMethod)))
		c.succeed()

		return result, nil
	}
}

// toolCall хранит спан и имя инструмента на время одного вызова
type toolCall struct {
	name string
	span trace.Span
}

func startCall(ctx context.Context, tracer trace.Tracer, name string) *toolCall {
	_, span := tracer.Start(ctx, name)
	metrics.APICalls.WithLabelValues("http", name, "started").Inc()
	return &toolCall{name: name, span: span}
}

// fail учитывает ошибку в метриках и спане; kind - validation или calculation
func (c *toolCall) fail(kind string, err error) error {
	status := "error"
	if kind == "validation" {
		status = "validation_error"
	}

	c.span.SetAttributes(attribute.String("error", kind+"_error"))
	c.span.RecordError(err)
	c.span.SetStatus(codes.Error, err.Error())

	metrics.ToolCalls.WithLabelValues(c.name, status).Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, kind).Inc()
	metrics.APICalls.WithLabelValues("http", c.name, "error").Inc()

	if kind == "validation" {
		return fmt.Errorf("неверные параметры: %w", err)
	}
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *toolCall) succeed() {
	c.span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(c.name, "success").Inc()
	metrics.APICalls.WithLabelValues("http", c.name, "success").Inc()
}

// prepareInput извлекает параметры, проверяет их и ограничивает срок
func prepareInput(cfg *config.Config, c *toolCall, params map[string]interface{}) (calculations.LoanInput, error) {
	in, err := parseLoanInput(params)
	if err != nil {
		return in, c.fail("validation", err)
	}

	c.span.SetAttributes(
		attribute.Float64("principal", in.Principal),
		attribute.Float64("rate", in.Rate),
		attribute.String("rate_basis", string(in.RateBasis)),
		attribute.Int("term_months", in.TermMonths),
		attribute.String("method", string(in.Method)),
	)

	in, err = validators.NormalizeLoanInput(cfg, in)
	if err != nil {
		return in, c.fail("validation", err)
	}
	return in, nil
}

// parseLoanInput извлекает параметры расчета. Числа приходят из JSON как float64.
// Срок принимается под именем term_months или months.
func parseLoanInput(params map[string]interface{}) (calculations.LoanInput, error) {
	var in calculations.LoanInput

	principal, ok := params["principal"].(float64)
	if !ok {
		return in, &validators.ValidationError{Field: "principal", Message: "параметр обязателен и должен быть числом"}
	}
	rate, ok := params["rate"].(float64)
	if !ok {
		return in, &validators.ValidationError{Field: "rate", Message: "параметр обязателен и должен быть числом"}
	}

	monthsRaw, ok := params["term_months"]
	if !ok {
		monthsRaw, ok = params["months"]
	}
	monthsFloat, isNumber := monthsRaw.(float64)
	if !ok || !isNumber {
		return in, &validators.ValidationError{Field: "term_months", Message: "параметр обязателен и должен быть числом"}
	}
	if monthsFloat != float64(int(monthsFloat)) {
		return in, &validators.ValidationError{Field: "term_months", Message: "срок должен быть целым числом месяцев"}
	}

	in.Principal = principal
	in.Rate = rate
	in.TermMonths = int(monthsFloat)

	if v, present := params["rate_basis"]; present {
		s, ok := v.(string)
		if !ok {
			return in, &validators.ValidationError{Field: "rate_basis", Message: "параметр должен быть строкой"}
		}
		in.RateBasis = calculations.RateBasis(s)
	}
	if v, present := params["method"]; present {
		s, ok := v.(string)
		if !ok {
			return in, &validators.ValidationError{Field: "method", Message: "параметр должен быть строкой"}
		}
		in.Method = calculations.Method(s)
	}

	return in, nil
}
