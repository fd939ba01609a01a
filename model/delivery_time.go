package model

import (
	"strconv"
	"strings"
	"unicode"
)

const minutesUnit = "minutes"

// DeliveryTime is the free-text duration recorded against a delivery, e.g. "32 minutes".
type DeliveryTime string

// Minutes returns the leading integer of the text. ok is false when the text
// does not start with a number.
func (d DeliveryTime) Minutes() (int, bool) {
	s := strings.TrimSpace(string(d))
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return minutes, true
}

// MinutesOrZero only trusts text ending with the unit word "minutes"; any other
// text, including a missing unit, counts as 0.
func (d DeliveryTime) MinutesOrZero() int {
	if !strings.HasSuffix(strings.TrimSpace(string(d)), minutesUnit) {
		return 0
	}
	minutes, ok := d.Minutes()
	if !ok {
		return 0
	}
	return minutes
}
