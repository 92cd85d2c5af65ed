package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/estate-loan-calculator/internal/export"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
)

func newScheduleCommand() *cobra.Command {
	var f loanFlags

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Рассчитать график платежей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(f.format, formatTable, formatJSON, formatCSV); err != nil {
				return err
			}

			out, err := callTool(cmd, tools.ToolLoanSchedule, &f)
			if err != nil {
				return err
			}
			output := out.(*tools.ScheduleOutput)

			w := cmd.OutOrStdout()
			switch f.format {
			case formatJSON:
				return writeJSON(w, output)
			case formatCSV:
				return export.WriteCSV(w, output.Result)
			default:
				return writeScheduleTable(w, output)
			}
		},
	}

	f.register(cmd, true)

	return cmd
}

func writeScheduleTable(w io.Writer, output *tools.ScheduleOutput) error {
	r := output.Result
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Схема погашения:\t%s\n", r.Method)
	fmt.Fprintf(tw, "Сумма кредита:\t%s\n", export.Money(r.Principal))
	fmt.Fprintf(tw, "Ставка в месяц:\t%.4f%%\n", r.MonthlyRate*100)
	fmt.Fprintf(tw, "Срок:\t%d мес.\n", r.TermMonths)
	fmt.Fprintf(tw, "Первый платеж:\t%s\n", export.Money(r.FirstMonthPayment))
	fmt.Fprintf(tw, "Последний платеж:\t%s\n", export.Money(r.LastMonthPayment))
	fmt.Fprintf(tw, "Переплата:\t%s\n", export.Money(r.TotalInterest))
	fmt.Fprintf(tw, "Всего выплат:\t%s\n", export.Money(r.TotalPayment))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Месяц\tОсновной долг\tПроценты\tПлатеж\tОстаток\t")
	for _, row := range r.Schedule {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			row.Month,
			export.Money(row.PrincipalPortion),
			export.Money(row.InterestPortion),
			export.Money(row.TotalPayment),
			export.Money(row.RemainingBalance),
		)
	}
	return tw.Flush()
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("неизвестный формат %q (допустимо: %v)", format, allowed)
}
