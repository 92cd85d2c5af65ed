package calculations

import (
	"github.com/cloud-ru/estate-loan-calculator/pkg/utils"
)

// comparisonTolerance - разница в общей сумме выплат, меньше которой схемы считаются равными
const comparisonTolerance = 0.005

var (
	annuityAdvantages = []string{
		"Фиксированный ежемесячный платеж - удобно планировать бюджет",
		"Меньше нагрузка в первые месяцы по сравнению с дифференцированным",
		"Проще управлять личными финансами",
	}

	equalPrincipalAdvantages = []string{
		"Меньшая общая переплата по процентам",
		"Быстрее уменьшается основной долг",
		"Платеж снижается каждый месяц",
	}
)

// CompareMethods сравнивает аннуитетную и дифференцированную схемы для одних и тех же
// суммы, ставки и срока. Поле Method во входных данных игнорируется.
// Возвращает nil, если входные данные неполны.
func CompareMethods(in LoanInput) *ComparisonResult {
	in.Method = MethodAnnuity
	annuity := ComputeSchedule(in)
	if annuity == nil {
		return nil
	}
	in.Method = MethodEqualPrincipal
	equal := ComputeSchedule(in)

	totalPaymentDiff := annuity.TotalPayment - equal.TotalPayment
	interestDiff := annuity.TotalInterest - equal.TotalInterest

	// Определяем, какая схема выгоднее
	var cheaper Method
	var savings float64
	var recommendation string

	switch {
	case totalPaymentDiff > comparisonTolerance:
		cheaper = MethodEqualPrincipal
		savings = totalPaymentDiff
		recommendation = "Дифференцированный кредит выгоднее по общей сумме выплат. Однако учтите, что первые платежи будут выше, чем при аннуитетной схеме."
	case totalPaymentDiff < -comparisonTolerance:
		cheaper = MethodAnnuity
		savings = -totalPaymentDiff
		recommendation = "Аннуитетный кредит выгоднее по общей сумме выплат. Платежи будут одинаковыми каждый месяц, что удобно для планирования бюджета."
	default:
		recommendation = "Обе схемы имеют одинаковую общую сумму выплат."
	}

	return &ComparisonResult{
		Principal:      in.Principal,
		MonthlyRate:    annuity.MonthlyRate,
		TermMonths:     in.TermMonths,
		Annuity:        summarize(annuity),
		EqualPrincipal: summarize(equal),
		Difference: Difference{
			TotalPaymentDiff: utils.Round2(totalPaymentDiff),
			InterestDiff:     utils.Round2(interestDiff),
			CheaperMethod:    cheaper,
			Savings:          utils.Round2(savings),
		},
		AnnuityAdvantages:        annuityAdvantages,
		EqualPrincipalAdvantages: equalPrincipalAdvantages,
		Recommendation:           recommendation,
		AnnuitySchedule:          annuity,
		EqualPrincipalSchedule:   equal,
	}
}

func summarize(r *AmortizationResult) MethodSummary {
	return MethodSummary{
		TotalPayment:       utils.Round2(r.TotalPayment),
		TotalInterest:      utils.Round2(r.TotalInterest),
		FirstMonthPayment:  utils.Round2(r.FirstMonthPayment),
		LastMonthPayment:   utils.Round2(r.LastMonthPayment),
		OverpaymentPercent: utils.Round2(r.TotalInterest / r.Principal * 100),
	}
}
