package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/cloud-ru/estate-loan-calculator/internal/config"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

// loanFlags - параметры кредита, общие для schedule и compare
type loanFlags struct {
	principal float64
	rate      float64
	basis     string
	months    int
	method    string
	format    string
}

func (f *loanFlags) register(cmd *cobra.Command, withMethod bool) {
	cmd.Flags().Float64Var(&f.principal, "principal", 0, "сумма кредита (required)")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "процентная ставка, % (required)")
	cmd.Flags().StringVar(&f.basis, "basis", "", "база ставки: yearly или monthly")
	cmd.Flags().IntVar(&f.months, "months", 0, "срок в месяцах (required)")
	cmd.Flags().StringVar(&f.format, "format", formatTable, "формат вывода: table, json или csv")
	if withMethod {
		cmd.Flags().StringVar(&f.method, "method", "", "схема погашения: annuity или equal-principal")
	}

	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("months")
}

// params собирает параметры в том же виде, что приходят в HTTP API
func (f *loanFlags) params() map[string]interface{} {
	p := map[string]interface{}{
		"principal":   f.principal,
		"rate":        f.rate,
		"term_months": float64(f.months),
	}
	if f.basis != "" {
		p["rate_basis"] = f.basis
	}
	if f.method != "" {
		p["method"] = f.method
	}
	return p
}

// callTool загружает конфигурацию и вызывает инструмент калькулятора
func callTool(cmd *cobra.Command, name string, f *loanFlags) (interface{}, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reg := tools.NewRegistry(cfg, otel.Tracer("estate-finance-cli"))
	return reg.Call(cmd.Context(), name, f.params())
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
