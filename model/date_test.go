package model

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestDateUnmarshalJSON(t *testing.T) {
	cases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: `"2026-10-01"`, want: NewDate(2026, time.October, 1)},
		{input: `"2026-10-01T00:00:00Z"`, want: NewDate(2026, time.October, 1)},
		{input: `null`, want: Date{}},
		{input: `"01/10/2026"`, wantErr: true},
		{input: `20261001`, wantErr: true},
	}
	for _, c := range cases {
		var got Date
		err := json.Unmarshal([]byte(c.input), &got)
		if c.wantErr {
			assert.Error(t, err, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		assert.True(t, c.want.Time().Equal(got.Time()), "%s gave %s", c.input, got.Time())
	}
}

func TestOrderDateInSeedRecord(t *testing.T) {
	order := Order{}
	err := json.Unmarshal([]byte(`{"order_id": 7, "order_date": "2026-10-01", "order_time": "19:30:00",
		"order_status": "Completed", "total_amount": 12.5}`), &order)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", order.OrderDate.Time().Format(dateLayout))

	buf, err := json.Marshal(order.OrderDate)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-01"`, string(buf))
}
