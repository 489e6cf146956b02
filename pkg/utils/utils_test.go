package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		term     int
		expected []string
	}{
		{
			name:     "even split",
			amount:   decimal.NewFromInt(100),
			term:     4,
			expected: []string{"25", "25", "25", "25"},
		},
		{
			name:     "remainder absorbed into final installment",
			amount:   decimal.NewFromInt(100),
			term:     3,
			expected: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:     "single installment",
			amount:   decimal.NewFromFloat(49.99),
			term:     1,
			expected: []string{"49.99"},
		},
		{
			name:     "sub-cent base rounds down",
			amount:   decimal.NewFromFloat(0.01),
			term:     3,
			expected: []string{"0", "0", "0.01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installments := SplitInstallments(tt.amount, tt.term)
			require.Len(t, installments, tt.term)

			for i, expected := range tt.expected {
				assert.True(t, installments[i].Equal(decimal.RequireFromString(expected)),
					"installment %d: expected %s, got %s", i+1, expected, installments[i])
			}
		})
	}
}

func TestSplitInstallments_SumEqualsAmount(t *testing.T) {
	// The schedule must sum to the principal exactly, whatever the split.
	cases := []struct {
		amount string
		term   int
	}{
		{"100", 3},
		{"100", 4},
		{"5000000", 50},
		{"999.97", 7},
		{"1", 52},
		{"0.07", 2},
	}

	for _, tc := range cases {
		amount := decimal.RequireFromString(tc.amount)
		installments := SplitInstallments(amount, tc.term)

		sum := decimal.Zero
		for _, installment := range installments {
			sum = sum.Add(installment)
		}

		assert.True(t, sum.Equal(amount),
			"amount=%s term=%d: schedule sums to %s", tc.amount, tc.term, sum)
	}
}

func TestCalculateDueDate(t *testing.T) {
	origination := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		installment int
		expected    time.Time
	}{
		{"first installment", 1, origination.AddDate(0, 0, 7)},
		{"second installment", 2, origination.AddDate(0, 0, 14)},
		{"third installment", 3, origination.AddDate(0, 0, 21)},
		{"fourth installment", 4, origination.AddDate(0, 0, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateDueDate(origination, tt.installment))
		})
	}
}

func TestParseDueDate(t *testing.T) {
	date, err := ParseDueDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDueDate("15-06-2024")
	assert.Error(t, err)

	_, err = ParseDueDate("tomorrow")
	assert.Error(t, err)
}

func TestValidateTimeOfDay(t *testing.T) {
	tests := []struct {
		name      string
		timeOfDay string
		wantErr   bool
	}{
		{"full day sentinel", FullDay, false},
		{"morning", "09:30", false},
		{"midnight", "00:00", false},
		{"last minute", "23:59", false},
		{"hours out of range", "24:00", true},
		{"minutes out of range", "12:60", true},
		{"missing separator", "0930", true},
		{"non-numeric", "ab:cd", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeOfDay(tt.timeOfDay)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsDatePast(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.True(t, IsDatePast(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDatePast(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), now), "today is not past")
	assert.False(t, IsDatePast(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), now))
}

func TestIsTimePastForToday(t *testing.T) {
	now := time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		dueDate   time.Time
		timeOfDay string
		expected  bool
	}{
		{"earlier today", today, "14:59", true},
		{"later today", today, "16:00", false},
		{"full day today never expires", today, FullDay, false},
		{"past time but due tomorrow", tomorrow, "08:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTimePastForToday(tt.dueDate, tt.timeOfDay, now))
		})
	}
}
