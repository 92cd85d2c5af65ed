package calculations

import "github.com/cloud-ru/estate-loan-calculator/pkg/utils"

// RateBasis определяет, к какому периоду относится введенная ставка
type RateBasis string

const (
	RateYearly  RateBasis = "yearly"
	RateMonthly RateBasis = "monthly"
)

// Method определяет схему погашения кредита
type Method string

const (
	MethodAnnuity        Method = "annuity"
	MethodEqualPrincipal Method = "equal-principal"
)

// Valid сообщает, известна ли база ставки
func (b RateBasis) Valid() bool {
	return b == RateYearly || b == RateMonthly
}

// Valid сообщает, известна ли схема погашения
func (m Method) Valid() bool {
	return m == MethodAnnuity || m == MethodEqualPrincipal
}

// LoanInput содержит параметры одного расчета
type LoanInput struct {
	Principal  float64   `json:"principal"`
	Rate       float64   `json:"rate"`
	RateBasis  RateBasis `json:"rate_basis"`
	TermMonths int       `json:"term_months"`
	Method     Method    `json:"method"`
}

// AmortizationRow представляет один месяц графика платежей
type AmortizationRow struct {
	Month            int     `json:"month"`
	PrincipalPortion float64 `json:"principal_portion"`
	InterestPortion  float64 `json:"interest_portion"`
	TotalPayment     float64 `json:"total_payment"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// AmortizationResult представляет график платежей и итоги по кредиту.
// MonthlyPayment для аннуитета равен фиксированному платежу, для
// дифференцированной схемы - платежу первого месяца.
type AmortizationResult struct {
	Method            Method            `json:"method"`
	Principal         float64           `json:"principal"`
	MonthlyRate       float64           `json:"monthly_rate"`
	TermMonths        int               `json:"term_months"`
	MonthlyPayment    float64           `json:"monthly_payment"`
	FirstMonthPayment float64           `json:"first_month_payment"`
	LastMonthPayment  float64           `json:"last_month_payment"`
	TotalInterest     float64           `json:"total_interest"`
	TotalPayment      float64           `json:"total_payment"`
	Schedule          []AmortizationRow `json:"schedule"`
}

// Rounded возвращает копию результата с денежными суммами, округленными до копеек.
// Ставка не округляется.
func (r *AmortizationResult) Rounded() *AmortizationResult {
	out := *r
	out.Principal = utils.Round2(r.Principal)
	out.MonthlyPayment = utils.Round2(r.MonthlyPayment)
	out.FirstMonthPayment = utils.Round2(r.FirstMonthPayment)
	out.LastMonthPayment = utils.Round2(r.LastMonthPayment)
	out.TotalInterest = utils.Round2(r.TotalInterest)
	out.TotalPayment = utils.Round2(r.TotalPayment)

	out.Schedule = make([]AmortizationRow, len(r.Schedule))
	for i, row := range r.Schedule {
		out.Schedule[i] = AmortizationRow{
			Month:            row.Month,
			PrincipalPortion: utils.Round2(row.PrincipalPortion),
			InterestPortion:  utils.Round2(row.InterestPortion),
			TotalPayment:     utils.Round2(row.TotalPayment),
			RemainingBalance: utils.Round2(row.RemainingBalance),
		}
	}
	return &out
}

// MethodSummary содержит ключевые показатели одной схемы для сравнения
type MethodSummary struct {
	TotalPayment       float64 `json:"total_payment"`
	TotalInterest      float64 `json:"total_interest"`
	FirstMonthPayment  float64 `json:"first_month_payment"`
	LastMonthPayment   float64 `json:"last_month_payment"`
	OverpaymentPercent float64 `json:"overpayment_percent"`
}

// Difference описывает разницу между схемами
type Difference struct {
	TotalPaymentDiff float64 `json:"total_payment_diff"`
	InterestDiff     float64 `json:"interest_diff"`
	CheaperMethod    Method  `json:"cheaper_method,omitempty"`
	Savings          float64 `json:"savings"`
}

// ComparisonResult представляет результат сравнения аннуитетной и дифференцированной схем
type ComparisonResult struct {
	Principal                float64             `json:"principal"`
	MonthlyRate              float64             `json:"monthly_rate"`
	TermMonths               int                 `json:"term_months"`
	Annuity                  MethodSummary       `json:"annuity"`
	EqualPrincipal           MethodSummary       `json:"equal_principal"`
	Difference               Difference          `json:"difference"`
	AnnuityAdvantages        []string            `json:"annuity_advantages"`
	EqualPrincipalAdvantages []string            `json:"equal_principal_advantages"`
	Recommendation           string              `json:"recommendation"`
	AnnuitySchedule          *AmortizationResult `json:"annuity_schedule"`
	EqualPrincipalSchedule   *AmortizationResult `json:"equal_principal_schedule"`
}
