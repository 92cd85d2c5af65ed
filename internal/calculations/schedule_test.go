package calculations

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cent - допуск для сумм, накопленных с плавающей точкой
const cent = 0.01

func TestMonthlyRate(t *testing.T) {
	assert.InDelta(t, 0.01, MonthlyRate(12, RateYearly), 1e-15)
	assert.InDelta(t, 0.01, MonthlyRate(1, RateMonthly), 1e-15)
	assert.Equal(t, 0.0, MonthlyRate(0, RateYearly))
}

func TestComputeSchedule_NoResult(t *testing.T) {
	valid := LoanInput{Principal: 1000, Rate: 10, RateBasis: RateYearly, TermMonths: 12, Method: MethodAnnuity}

	tests := []struct {
		name   string
		mutate func(*LoanInput)
	}{
		{name: "zero principal", mutate: func(in *LoanInput) { in.Principal = 0 }},
		{name: "negative principal", mutate: func(in *LoanInput) { in.Principal = -1 }},
		{name: "zero term", mutate: func(in *LoanInput) { in.TermMonths = 0 }},
		{name: "negative rate", mutate: func(in *LoanInput) { in.Rate = -0.5 }},
		{name: "NaN rate", mutate: func(in *LoanInput) { in.Rate = math.NaN() }},
		{name: "infinite principal", mutate: func(in *LoanInput) { in.Principal = math.Inf(1) }},
		{name: "unknown method", mutate: func(in *LoanInput) { in.Method = "balloon" }},
		{name: "missing basis", mutate: func(in *LoanInput) { in.RateBasis = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Nil(t, ComputeSchedule(in))
		})
	}

	assert.NotNil(t, ComputeSchedule(valid))
}

func TestComputeSchedule_RateBasis(t *testing.T) {
	yearly := ComputeSchedule(LoanInput{Principal: 120_000_000, Rate: 12, RateBasis: RateYearly, TermMonths: 12, Method: MethodAnnuity})
	monthly := ComputeSchedule(LoanInput{Principal: 120_000_000, Rate: 1, RateBasis: RateMonthly, TermMonths: 12, Method: MethodAnnuity})
	require.NotNil(t, yearly)
	require.NotNil(t, monthly)

	assert.InDelta(t, yearly.MonthlyPayment, monthly.MonthlyPayment, 1e-6)
	assert.InDelta(t, yearly.TotalInterest, monthly.TotalInterest, 1e-6)
}

func TestComputeSchedule_Invariants(t *testing.T) {
	principals := []float64{1, 15_000.5, 120_000_000, 1e9}
	rates := []float64{0, 1e-15, 1e-11, 1e-9, 1e-6, 0.5, 12, 36}
	terms := []int{1, 2, 12, 120, 300}
	methods := []Method{MethodAnnuity, MethodEqualPrincipal}

	for _, method := range methods {
		for _, p := range principals {
			for _, rate := range rates {
				for _, n := range terms {
					in := LoanInput{Principal: p, Rate: rate, RateBasis: RateYearly, TermMonths: n, Method: method}
					t.Run(fmt.Sprintf("%s/%g/%g/%d", method, p, rate, n), func(t *testing.T) {
						checkInvariants(t, in, ComputeSchedule(in))
					})
				}
			}
		}
	}
}

func checkInvariants(t *testing.T, in LoanInput, result *AmortizationResult) {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Schedule, in.TermMonths)
	require.False(t, math.IsInf(result.MonthlyPayment, 0) || math.IsNaN(result.MonthlyPayment))
	assert.GreaterOrEqual(t, result.TotalInterest, 0.0)
	assert.Equal(t, in.Method, result.Method)

	var sumPrincipal, sumInterest float64
	prevBalance := in.Principal
	for i, row := range result.Schedule {
		assert.Equal(t, i+1, row.Month)
		assert.GreaterOrEqual(t, row.RemainingBalance, 0.0)
		assert.LessOrEqual(t, row.RemainingBalance, prevBalance)
		assert.InDelta(t, prevBalance-row.PrincipalPortion, row.RemainingBalance, cent)
		assert.InDelta(t, row.PrincipalPortion+row.InterestPortion, row.TotalPayment, cent)
		if in.Rate == 0 {
			assert.Equal(t, 0.0, row.InterestPortion)
			assert.InDelta(t, in.Principal/float64(in.TermMonths), row.TotalPayment, cent)
		}
		sumPrincipal += row.PrincipalPortion
		sumInterest += row.InterestPortion
		prevBalance = row.RemainingBalance
	}

	assert.Equal(t, 0.0, result.Schedule[in.TermMonths-1].RemainingBalance)
	assert.InDelta(t, in.Principal, sumPrincipal, cent)
	assert.InDelta(t, result.TotalInterest, sumInterest, cent)
	assert.InDelta(t, in.Principal+result.TotalInterest, result.TotalPayment, cent)

	switch in.Method {
	case MethodAnnuity:
		assert.InDelta(t, result.MonthlyPayment*float64(in.TermMonths), result.TotalPayment, cent)
		assert.InDelta(t, result.MonthlyPayment, result.LastMonthPayment, cent)
	case MethodEqualPrincipal:
		want := in.Principal / float64(in.TermMonths)
		for _, row := range result.Schedule {
			assert.Equal(t, want, row.PrincipalPortion)
		}
	}

	if in.Rate == 0 {
		assert.Equal(t, 0.0, result.TotalInterest)
	}
}

func TestRounded(t *testing.T) {
	result := ComputeSchedule(LoanInput{Principal: 100_000, Rate: 7.7, RateBasis: RateYearly, TermMonths: 7, Method: MethodAnnuity})
	require.NotNil(t, result)

	rounded := result.Rounded()
	require.Len(t, rounded.Schedule, 7)
	for _, row := range rounded.Schedule {
		assert.Equal(t, math.Round(row.InterestPortion*100)/100, row.InterestPortion)
	}
	assert.Equal(t, math.Round(result.MonthlyPayment*100)/100, rounded.MonthlyPayment)
	assert.Equal(t, result.MonthlyRate, rounded.MonthlyRate)

	// Исходный результат не меняется
	assert.NotSame(t, &result.Schedule[0], &rounded.Schedule[0])
}
