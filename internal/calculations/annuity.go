package calculations

import "math"

// AnnuityPayment рассчитывает фиксированный ежемесячный платеж
// M = P·r / (1 - (1+r)^-n). Степень считается через Log1p/Expm1, иначе при
// малой ставке знаменатель теряет точность.
// При нулевой ставке формула не определена, поэтому долг делится поровну.
func AnnuityPayment(principal, monthlyRate float64, months int) float64 {
	n := float64(months)
	if monthlyRate == 0.0 {
		return principal / n
	}

	discount := -math.Expm1(-n * math.Log1p(monthlyRate))
	if discount == 0.0 {
		return principal / n
	}
	return principal * monthlyRate / discount
}

// AnnuitySchedule рассчитывает график аннуитетного кредита.
// Параметры должны быть проверены вызывающим кодом: principal > 0, monthlyRate >= 0, months >= 1.
func AnnuitySchedule(principal, monthlyRate float64, months int) *AmortizationResult {
	P := principal
	r := monthlyRate
	n := months

	monthlyPayment := AnnuityPayment(P, r, n)

	schedule := make([]AmortizationRow, 0, n)
	remaining := P

	for m := 1; m <= n; m++ {
		interest := remaining * r
		principalComponent := monthlyPayment - interest
		payment := monthlyPayment

		// В последнем месяце гасим остаток целиком, чтобы долг сошелся в ноль
		if m == n {
			principalComponent = remaining
			payment = principalComponent + interest
		}

		remaining = math.Max(0.0, remaining-principalComponent)
		if m == n {
			remaining = 0.0
		}

		schedule = append(schedule, AmortizationRow{
			Month:            m,
			PrincipalPortion: principalComponent,
			InterestPortion:  interest,
			TotalPayment:     payment,
			RemainingBalance: remaining,
		})
	}

	totalPayment := monthlyPayment * float64(n)

	return &AmortizationResult{
		Method:            MethodAnnuity,
		Principal:         P,
		MonthlyRate:       r,
		TermMonths:        n,
		MonthlyPayment:    monthlyPayment,
		FirstMonthPayment: schedule[0].TotalPayment,
		LastMonthPayment:  schedule[n-1].TotalPayment,
		TotalInterest:     totalPayment - P,
		TotalPayment:      totalPayment,
		Schedule:          schedule,
	}
}
