package calculations

import "github.com/cloud-ru/estate-loan-calculator/pkg/utils"

// MonthlyRate переводит ставку в процентах в месячную долю
func MonthlyRate(ratePercent float64, basis RateBasis) float64 {
	if basis == RateMonthly {
		return ratePercent / 100.0
	}
	return ratePercent / 100.0 / 12.0
}

// Ready сообщает, достаточно ли входных данных для расчета.
// Нулевая ставка допустима, нулевые сумма и срок - нет.
func (in LoanInput) Ready() bool {
	if !utils.IsFinite(in.Principal) || !utils.IsFinite(in.Rate) {
		return false
	}
	return in.Principal > 0 && in.Rate >= 0 && in.TermMonths >= 1 &&
		in.RateBasis.Valid() && in.Method.Valid()
}

// ComputeSchedule строит график платежей выбранной схемой.
// Возвращает nil, если входные данные неполны: расчет в этом случае не выполняется.
func ComputeSchedule(in LoanInput) *AmortizationResult {
	if !in.Ready() {
		return nil
	}

	r := MonthlyRate(in.Rate, in.RateBasis)
	switch in.Method {
	case MethodEqualPrincipal:
		return EqualPrincipalSchedule(in.Principal, r, in.TermMonths)
	default:
		return AnnuitySchedule(in.Principal, r, in.TermMonths)
	}
}
