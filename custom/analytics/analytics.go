// Package analytics answers the fixed business questions over a store snapshot.
// Every function is a pure read: the same snapshot and reference time always
// give the same rows, ties are broken on a secondary key.
package analytics

import (
	"delivery_analytics/model"
	"github.com/shopspring/decimal"
	"time"
)

var hundred = decimal.NewFromInt(100)

// dayOf truncates t to its calendar date, keeping the date as seen in t's location.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func orderDay(date model.Date) time.Time {
	return dayOf(date.Time())
}

// windowStart is the first date inside a lookback of days ending today.
func windowStart(now time.Time, days int) time.Time {
	return dayOf(now).AddDate(0, 0, -days)
}

// lastMonth returns [first day of previous month, first day of this month).
func lastMonth(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.Date()
	end := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, -1, 0), end
}

func average(sum decimal.Decimal, count int) decimal.Decimal {
	return sum.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func percentage(part, total int) decimal.Decimal {
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
}

func limit[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
