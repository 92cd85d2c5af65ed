package calculations

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnuitySchedule(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		monthlyRate  float64
		months       int
		checkSummary func(*testing.T, *AmortizationResult)
	}{
		{
			name:        "basic annuity",
			principal:   1000000,
			monthlyRate: 0.01,
			months:      12,
			checkSummary: func(t *testing.T, result *AmortizationResult) {
				require.Len(t, result.Schedule, 12)
				assert.Equal(t, MethodAnnuity, result.Method)
				assert.Greater(t, result.MonthlyPayment, 0.0)
				assert.Greater(t, result.TotalPayment, result.Principal)

				// Остаток в последнем месяце равен 0
				last := result.Schedule[len(result.Schedule)-1]
				assert.Equal(t, 0.0, last.RemainingBalance)
			},
		},
		{
			name:        "120 million at one percent a month",
			principal:   120_000_000,
			monthlyRate: 0.01,
			months:      12,
			checkSummary: func(t *testing.T, result *AmortizationResult) {
				assert.InDelta(t, 10_661_854.64, result.MonthlyPayment, 0.01)
				assert.InDelta(t, 7_942_255.70, result.TotalInterest, 0.01)
				assert.InDelta(t, 1_200_000.0, result.Schedule[0].InterestPortion, 1e-6)
				assert.InDelta(t, 9_461_854.64, result.Schedule[0].PrincipalPortion, 0.01)

				for i := 1; i < len(result.Schedule); i++ {
					prev, cur := result.Schedule[i-1], result.Schedule[i]
					assert.Less(t, cur.InterestPortion, prev.InterestPortion, "month %d", cur.Month)
					assert.Greater(t, cur.PrincipalPortion, prev.PrincipalPortion, "month %d", cur.Month)
				}
			},
		},
		{
			name:        "zero rate",
			principal:   100000,
			monthlyRate: 0,
			months:      10,
			checkSummary: func(t *testing.T, result *AmortizationResult) {
				assert.Equal(t, 10000.0, result.MonthlyPayment)
				assert.Equal(t, 0.0, result.TotalInterest)
				for _, row := range result.Schedule {
					assert.Equal(t, 0.0, row.InterestPortion)
					assert.InDelta(t, 10000.0, row.TotalPayment, 1e-6)
				}
			},
		},
		{
			name:        "single month",
			principal:   5000,
			monthlyRate: 0.02,
			months:      1,
			checkSummary: func(t *testing.T, result *AmortizationResult) {
				require.Len(t, result.Schedule, 1)
				row := result.Schedule[0]
				assert.InDelta(t, 5000.0, row.PrincipalPortion, 1e-9)
				assert.InDelta(t, 100.0, row.InterestPortion, 1e-9)
				assert.InDelta(t, 5100.0, result.TotalPayment, 1e-6)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnnuitySchedule(tt.principal, tt.monthlyRate, tt.months)
			require.NotNil(t, result)
			tt.checkSummary(t, result)
		})
	}
}

func TestAnnuityPayment(t *testing.T) {
	assert.InDelta(t, 10_661_854.64, AnnuityPayment(120_000_000, 0.01, 12), 0.01)
	assert.Equal(t, 100.0, AnnuityPayment(1200, 0, 12))
}

func TestAnnuityPayment_SmallRates(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		months      int
		want        float64
		delta       float64
	}{
		{name: "rate below float epsilon", principal: 1e6, monthlyRate: 1e-15 / 100 / 12, months: 12, want: 1e6 / 12, delta: 1e-6},
		{name: "smallest positive rate", principal: 1e6, monthlyRate: math.SmallestNonzeroFloat64, months: 12, want: 1e6 / 12, delta: 1e-6},
		{name: "tiny rate long term", principal: 1e9, monthlyRate: 1e-11 / 100 / 12, months: 300, want: 1e9 / 300, delta: cent},
		{name: "huge growth", principal: 1e6, monthlyRate: 2, months: 100_000, want: 2e6, delta: cent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnuityPayment(tt.principal, tt.monthlyRate, tt.months)
			require.False(t, math.IsInf(got, 0) || math.IsNaN(got), "payment must be finite, got %v", got)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestAnnuitySchedule_TinyRateInterest(t *testing.T) {
	// проценты по формуле P·r·(n+1)/2 с точностью до членов порядка r^2
	const principal = 1e9
	for _, rate := range []float64{1e-6, 1e-9, 1e-11} {
		t.Run(fmt.Sprintf("%g", rate), func(t *testing.T) {
			r := MonthlyRate(rate, RateYearly)
			result := AnnuitySchedule(principal, r, 300)

			assert.GreaterOrEqual(t, result.TotalInterest, 0.0)
			assert.InDelta(t, principal*r*301/2, result.TotalInterest, cent)
			assert.InDelta(t, result.MonthlyPayment, result.LastMonthPayment, cent)
		})
	}
}
