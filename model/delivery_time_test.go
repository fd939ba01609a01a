package model

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDeliveryTimeMinutes(t *testing.T) {
	cases := []struct {
		text    DeliveryTime
		minutes int
		ok      bool
	}{
		{"35 minutes", 35, true},
		{"  7 minutes ", 7, true},
		{"42", 42, true},
		{"18 mins", 18, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"about 30 minutes", 0, false},
		{"99999999999999999999999 minutes", 0, false},
	}
	for _, c := range cases {
		minutes, ok := c.text.Minutes()
		assert.Equal(t, c.ok, ok, "ok for %q", c.text)
		assert.Equal(t, c.minutes, minutes, "minutes for %q", c.text)
	}
}

func TestDeliveryTimeMinutesOrZero(t *testing.T) {
	assert.Equal(t, 35, DeliveryTime("35 minutes").MinutesOrZero())
	assert.Equal(t, 35, DeliveryTime("35minutes").MinutesOrZero())
	assert.Equal(t, 0, DeliveryTime("35").MinutesOrZero())
	assert.Equal(t, 0, DeliveryTime("35 mins").MinutesOrZero())
	assert.Equal(t, 0, DeliveryTime("N/A").MinutesOrZero())
	assert.Equal(t, 0, DeliveryTime("minutes").MinutesOrZero())
	assert.Equal(t, 0, DeliveryTime("").MinutesOrZero())
}
