// Package export выгружает график платежей в CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/estate-loan-calculator/internal/calculations"
)

// Header - заголовок CSV с графиком платежей
const Header = "month,principal_portion,interest_portion,total_payment,remaining_balance"

// TotalLabel стоит в первой колонке итоговой строки
const TotalLabel = "total"

// Money форматирует сумму с двумя знаками после запятой
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteCSV пишет заголовок, по строке на каждый месяц и итоговую строку.
// Итог по основному долгу считается как сумма округленных строк, поэтому
// в CSV столбцы сходятся до копейки.
func WriteCSV(w io.Writer, result *calculations.AmortizationResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	totalPrincipal := decimal.Zero
	totalInterest := decimal.Zero
	totalPayment := decimal.Zero

	for _, row := range result.Schedule {
		principal := decimal.NewFromFloat(row.PrincipalPortion).Round(2)
		interest := decimal.NewFromFloat(row.InterestPortion).Round(2)
		payment := decimal.NewFromFloat(row.TotalPayment).Round(2)

		totalPrincipal = totalPrincipal.Add(principal)
		totalInterest = totalInterest.Add(interest)
		totalPayment = totalPayment.Add(payment)

		rec := []string{
			strconv.Itoa(row.Month),
			principal.StringFixed(2),
			interest.StringFixed(2),
			payment.StringFixed(2),
			Money(row.RemainingBalance),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing month %d: %w", row.Month, err)
		}
	}

	totals := []string{
		TotalLabel,
		totalPrincipal.StringFixed(2),
		totalInterest.StringFixed(2),
		totalPayment.StringFixed(2),
		"",
	}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
