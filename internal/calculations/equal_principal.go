package calculations

// EqualPrincipalSchedule рассчитывает график дифференцированного кредита:
// основной долг гасится равными частями, проценты начисляются на остаток.
func EqualPrincipalSchedule(principal, monthlyRate float64, months int) *AmortizationResult {
	P := principal
	r := monthlyRate
	n := months

	principalComponent := P / float64(n)
	remaining := P
	totalInterest := 0.0
	schedule := make([]AmortizationRow, 0, n)

	for m := 1; m <= n; m++ {
		interest := remaining * r
		payment := principalComponent + interest

		remaining -= principalComponent
		if remaining < 0 || m == n {
			remaining = 0.0
		}
		totalInterest += interest

		schedule = append(schedule, AmortizationRow{
			Month:            m,
			PrincipalPortion: principalComponent,
			InterestPortion:  interest,
			TotalPayment:     payment,
			RemainingBalance: remaining,
		})
	}

	return &AmortizationResult{
		Method:            MethodEqualPrincipal,
		Principal:         P,
		MonthlyRate:       r,
		TermMonths:        n,
		MonthlyPayment:    schedule[0].TotalPayment,
		FirstMonthPayment: schedule[0].TotalPayment,
		LastMonthPayment:  schedule[n-1].TotalPayment,
		TotalInterest:     totalInterest,
		TotalPayment:      P + totalInterest,
		Schedule:          schedule,
	}
}
