package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/estate-loan-calculator/internal/calculations"
	"github.com/cloud-ru/estate-loan-calculator/internal/export"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
)

func newCompareCommand() *cobra.Command {
	var f loanFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Сравнить аннуитетную и дифференцированную схемы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// у сравнения два графика, поэтому CSV не поддерживается
			if err := checkFormat(f.format, formatTable, formatJSON); err != nil {
				return err
			}

			out, err := callTool(cmd, tools.ToolCompareLoanSchedules, &f)
			if err != nil {
				return err
			}
			result := out.(*calculations.ComparisonResult)

			if f.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeComparisonTable(cmd.OutOrStdout(), result)
		},
	}

	f.register(cmd, false)

	return cmd
}

func writeComparisonTable(w io.Writer, r *calculations.ComparisonResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	a, e := r.Annuity, r.EqualPrincipal
	fmt.Fprintf(tw, "\t%s\t%s\n", calculations.MethodAnnuity, calculations.MethodEqualPrincipal)
	fmt.Fprintf(tw, "Первый платеж\t%s\t%s\n", export.Money(a.FirstMonthPayment), export.Money(e.FirstMonthPayment))
	fmt.Fprintf(tw, "Последний платеж\t%s\t%s\n", export.Money(a.LastMonthPayment), export.Money(e.LastMonthPayment))
	fmt.Fprintf(tw, "Переплата\t%s\t%s\n", export.Money(a.TotalInterest), export.Money(e.TotalInterest))
	fmt.Fprintf(tw, "Всего выплат\t%s\t%s\n", export.Money(a.TotalPayment), export.Money(e.TotalPayment))
	fmt.Fprintf(tw, "Переплата, %%\t%.2f\t%.2f\n", a.OverpaymentPercent, e.OverpaymentPercent)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if r.Difference.CheaperMethod != "" {
		fmt.Fprintf(w, "Выгоднее: %s, экономия %s\n", r.Difference.CheaperMethod, export.Money(r.Difference.Savings))
	} else {
		fmt.Fprintln(w, "Схемы равноценны по переплате")
	}
	_, err := fmt.Fprintf(w, "Рекомендация: %s\n", r.Recommendation)
	return err
}
