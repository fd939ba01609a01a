package report

import (
	"bytes"
	"delivery_analytics/constants"
	"delivery_analytics/custom/store"
	"delivery_analytics/model"
	"encoding/json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func testSnapshot() *store.Snapshot {
	return store.NewSnapshot(
		[]model.Customer{{ID: 1, Name: "C1"}},
		[]model.Restaurant{{ID: 1, Name: "R1", City: "Metro"}},
		[]model.Rider{{ID: 1, Name: "Ravi"}},
		[]model.Delivery{
			{ID: 1, RiderId: 1, Status: constants.STATUS_COMPLETED, DeliveryTime: "35 minutes"},
			{ID: 2, RiderId: 1, Status: "Not Delivered", DeliveryTime: "N/A"},
		},
		[]model.Order{{
			ID:           1,
			CustomerId:   1,
			RestaurantId: 1,
			OrderItem:    "Biryani",
			OrderDate:    model.NewDate(2026, time.October, 18),
			OrderTime:    datatypes.NewTime(13, 20, 0, 0),
			Status:       constants.STATUS_COMPLETED,
			TotalAmount:  decimal.RequireFromString("42.5"),
		}},
	)
}

func TestReportsAreInQuestionOrder(t *testing.T) {
	reports := Reports()
	require.Len(t, reports, 15)
	keys := make(map[string]bool)
	for i, r := range reports {
		assert.Equal(t, i+1, r.Number)
		assert.NotEmpty(t, r.Title)
		assert.False(t, keys[r.Key], "duplicate key %s", r.Key)
		keys[r.Key] = true
	}
	assert.Equal(t, "active_customers", reports[0].Key)
	assert.Equal(t, "average_delivery_time", reports[14].Key)

	// Callers get a copy.
	reports[0].Key = "changed"
	assert.Equal(t, "active_customers", Reports()[0].Key)
}

func TestSelect(t *testing.T) {
	selected, err := Select([]string{"status_distribution", " active_customers", "status_distribution"})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "active_customers", selected[0].Key)
	assert.Equal(t, "status_distribution", selected[1].Key)

	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 15)

	// "--only ," splits into blank keys.
	blank, err := Select([]string{"", " "})
	require.NoError(t, err)
	assert.Len(t, blank, 15)

	_, err = Select([]string{"active_customers", "revenue_forecast"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), constants.UNKNOWN_REPORT)
	assert.Contains(t, err.Error(), "revenue_forecast")
}

func TestRunBuildsTables(t *testing.T) {
	tables, err := Run(testSnapshot(), testNow)
	require.NoError(t, err)
	require.Len(t, tables, 15)

	assert.Equal(t, Table{
		Number:  1,
		Key:     "active_customers",
		Title:   "Active customers in the last 30 days",
		Columns: []string{"active_customers"},
		Rows:    [][]string{{"1"}},
	}, tables[0])
	assert.Equal(t, []string{"restaurant_id", "restaurant_name", "avg_order_value"}, tables[11].Columns)
	assert.Equal(t, [][]string{{"1", "R1", "42.50"}}, tables[11].Rows)
	assert.Equal(t, [][]string{{"Completed", "1", "100.00"}}, tables[12].Rows)
	assert.Equal(t, [][]string{{"2026-10-18", "42.50"}}, tables[5].Rows)
	assert.Equal(t, [][]string{{"13", "1"}}, tables[6].Rows)
	// "N/A" counts as zero minutes.
	assert.Equal(t, [][]string{{"1", "Ravi", "2", "17.50"}}, tables[14].Rows)
	// One completed delivery is below the threshold.
	assert.Empty(t, tables[8].Rows)
	assert.Equal(t, []string{"rider_id", "rider_name", "total_deliveries", "avg_delivery_time"}, tables[8].Columns)
}

func TestRunOnEmptySnapshot(t *testing.T) {
	tables, err := Run(store.NewSnapshot(nil, nil, nil, nil, nil), testNow)
	require.NoError(t, err)
	require.Len(t, tables, 15)
	for _, table := range tables {
		assert.NotEmpty(t, table.Columns, table.Key)
		assert.NotNil(t, table.Rows, table.Key)
		assert.Empty(t, table.Rows, table.Key)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := Run(testSnapshot(), testNow)
	require.NoError(t, err)
	second, err := Run(testSnapshot(), testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunReportsWrapsErrors(t *testing.T) {
	broken := newReport(99, "broken", "Broken", func(*store.Snapshot, time.Time) []int { return []int{1} })
	_, err := RunReports([]Report{broken}, testSnapshot(), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report broken")
}

func TestRenderText(t *testing.T) {
	selected, err := Select([]string{"restaurants_per_city", "fastest_riders"})
	require.NoError(t, err)
	tables, err := RunReports(selected, testSnapshot(), testNow)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, constants.OUTPUT_FORMAT_TEXT, tables))
	assert.Equal(t, strings.Join([]string{
		"Q2. Restaurants per city",
		"city   total_restaurants",
		"----   -----------------",
		"Metro  1",
		"",
		"Q9. Fastest riders with at least 10 completed deliveries",
		"(no rows)",
		"",
	}, "\n"), buf.String())
}

func TestRenderJSON(t *testing.T) {
	tables, err := Run(testSnapshot(), testNow)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, constants.OUTPUT_FORMAT_JSON, tables))
	decoded := make([]Table, 0)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, tables, decoded)

	buf.Reset()
	require.NoError(t, RenderJSON(buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), constants.UNKNOWN_OUTPUT_FORMAT)
	assert.Error(t, ValidateFormat("csv"))
	assert.NoError(t, ValidateFormat(constants.OUTPUT_FORMAT_JSON))
}
