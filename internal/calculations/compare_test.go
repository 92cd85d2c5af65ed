package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareMethods(t *testing.T) {
	in := LoanInput{Principal: 120_000_000, Rate: 12, RateBasis: RateYearly, TermMonths: 12, Method: MethodAnnuity}

	result := CompareMethods(in)
	require.NotNil(t, result)

	assert.Equal(t, MethodEqualPrincipal, result.Difference.CheaperMethod)
	assert.InDelta(t, 142_255.70, result.Difference.Savings, 0.01)
	assert.InDelta(t, result.Difference.TotalPaymentDiff, result.Difference.InterestDiff, 0.01)
	assert.InDelta(t, 7_800_000.0, result.EqualPrincipal.TotalInterest, 0.01)
	assert.InDelta(t, 6.5, result.EqualPrincipal.OverpaymentPercent, 0.001)
	assert.NotEmpty(t, result.Recommendation)

	require.NotNil(t, result.AnnuitySchedule)
	require.NotNil(t, result.EqualPrincipalSchedule)
	assert.Equal(t, MethodAnnuity, result.AnnuitySchedule.Method)
	assert.Equal(t, MethodEqualPrincipal, result.EqualPrincipalSchedule.Method)
}

func TestCompareMethods_ZeroRate(t *testing.T) {
	result := CompareMethods(LoanInput{Principal: 1200, Rate: 0, RateBasis: RateMonthly, TermMonths: 12})
	require.NotNil(t, result)

	assert.Empty(t, result.Difference.CheaperMethod)
	assert.Equal(t, 0.0, result.Difference.Savings)
	assert.Equal(t, 0.0, result.Annuity.TotalInterest)
	assert.Equal(t, 0.0, result.EqualPrincipal.TotalInterest)
}

func TestCompareMethods_TinyRate(t *testing.T) {
	result := CompareMethods(LoanInput{Principal: 1e6, Rate: 1e-15, RateBasis: RateYearly, TermMonths: 12})
	require.NotNil(t, result)

	assert.Empty(t, result.Difference.CheaperMethod)
	assert.Equal(t, 0.0, result.Difference.Savings)
	assert.InDelta(t, 83_333.33, result.Annuity.FirstMonthPayment, cent)
}

func TestCompareMethods_NoResult(t *testing.T) {
	assert.Nil(t, CompareMethods(LoanInput{Principal: 0, Rate: 10, RateBasis: RateYearly, TermMonths: 12}))
}
