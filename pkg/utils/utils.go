package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FullDay is the sentinel time-of-day value for tasks without a clock time.
const FullDay = "FULL_DAY"

// DueDateLayout is the wire format for task due dates.
const DueDateLayout = "2006-01-02"

// SplitInstallments splits a principal into term weekly installments.
// Installments 1..term-1 carry the base amount rounded down to cents; the
// final installment absorbs the remainder so the schedule sums to amount
// exactly. Rounding down keeps every installment positive.
func SplitInstallments(amount decimal.Decimal, term int) []decimal.Decimal {
	base := amount.Div(decimal.NewFromInt(int64(term))).RoundDown(2)

	installments := make([]decimal.Decimal, term)
	for i := 0; i < term-1; i++ {
		installments[i] = base
	}
	installments[term-1] = amount.Sub(base.Mul(decimal.NewFromInt(int64(term - 1))))

	return installments
}

// CalculateDueDate calculates the due date for a specific installment.
// Installment 1 is due 7 days after origination, installment 2 after 14, etc.
func CalculateDueDate(originationDate time.Time, installment int) time.Time {
	return originationDate.AddDate(0, 0, 7*installment)
}

// ParseDueDate parses a task due date in YYYY-MM-DD form.
func ParseDueDate(s string) (time.Time, error) {
	date, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// ValidateTimeOfDay checks a task time value: either FULL_DAY or HH:MM with
// hours in [0,23] and minutes in [0,59].
func ValidateTimeOfDay(s string) error {
	if s == FullDay {
		return nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return fmt.Errorf("time must be %s or HH:MM", FullDay)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return fmt.Errorf("time hours must be between 0 and 23")
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return fmt.Errorf("time minutes must be between 0 and 59")
	}

	return nil
}

// IsDatePast reports whether a due date falls before today.
func IsDatePast(dueDate time.Time, now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)
	return dueDate.Before(today)
}

// IsTimePastForToday reports whether a task due today carries a clock time
// that has already passed. FULL_DAY tasks never expire within the day.
func IsTimePastForToday(dueDate time.Time, timeOfDay string, now time.Time) bool {
	if timeOfDay == FullDay {
		return false
	}

	today := now.UTC().Truncate(24 * time.Hour)
	if !dueDate.Equal(today) {
		return false
	}

	parts := strings.Split(timeOfDay, ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	due := today.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
	return due.Before(now.UTC())
}
