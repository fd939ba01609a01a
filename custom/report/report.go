// Package report runs the analytics queries in their fixed order and renders
// each result as a labelled table.
package report

import (
	"delivery_analytics/constants"
	"delivery_analytics/custom/analytics"
	"delivery_analytics/custom/store"
	"encoding/json"
	"fmt"
	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"
)

type Table struct {
	Number  int        `json:"number"`
	Key     string     `json:"key"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type Report struct {
	Number int
	Key    string
	Title  string
	Run    func(s *store.Snapshot, now time.Time) (Table, error)
}

func newReport[T any](number int, key, title string, query func(*store.Snapshot, time.Time) []T) Report {
	return Report{
		Number: number,
		Key:    key,
		Title:  title,
		Run: func(s *store.Snapshot, now time.Time) (Table, error) {
			return tableOf(number, key, title, query(s, now))
		},
	}
}

var allReports = []Report{
	newReport(1, "active_customers", "Active customers in the last 30 days", analytics.ActiveCustomers),
	newReport(2, "restaurants_per_city", "Restaurants per city", analytics.RestaurantsPerCity),
	newReport(3, "top_spenders", "Top 10 customers by completed spend", analytics.TopSpenders),
	newReport(4, "top_restaurants", "Top 5 restaurants by completed orders", analytics.TopRestaurants),
	newReport(5, "popular_items", "Top 10 most ordered items", analytics.PopularItems),
	newReport(6, "daily_revenue", "Daily revenue for the last 30 days", analytics.DailyRevenue),
	newReport(7, "orders_by_hour", "Orders by hour of day", analytics.OrdersByHour),
	newReport(8, "unique_customers_per_restaurant", "Unique customers per restaurant", analytics.UniqueCustomersPerRestaurant),
	newReport(9, "fastest_riders", "Fastest riders with at least 10 completed deliveries", analytics.FastestRiders),
	newReport(10, "cancellation_rate_by_city", "Cancellation rate by city", analytics.CancellationRateByCity),
	newReport(11, "frequent_customers", "Customers with more than 5 orders", analytics.FrequentCustomers),
	newReport(12, "average_order_value", "Average completed order value per restaurant", analytics.AverageOrderValue),
	newReport(13, "status_distribution", "Order status distribution", analytics.StatusDistribution),
	newReport(14, "top_riders_last_month", "Top riders by completed deliveries last month", analytics.TopRidersLastMonth),
	newReport(15, "average_delivery_time", "Average delivery time per rider", analytics.AverageDeliveryTime),
}

// Reports lists every report in question order.
func Reports() []Report {
	reports := make([]Report, len(allReports))
	copy(reports, allReports)
	return reports
}

// Select keeps the reports named by keys, in question order. Blank keys are
// ignored and no keys at all selects every report.
func Select(keys []string) ([]Report, error) {
	wanted := make(map[string]bool)
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !isReportKey(key) {
			return nil, fmt.Errorf("%s %q", constants.UNKNOWN_REPORT, key)
		}
		wanted[key] = true
	}
	if len(wanted) == 0 {
		return Reports(), nil
	}

	selected := make([]Report, 0, len(wanted))
	for _, r := range allReports {
		if wanted[r.Key] {
			selected = append(selected, r)
		}
	}
	return selected, nil
}

func isReportKey(key string) bool {
	for _, r := range allReports {
		if r.Key == key {
			return true
		}
	}
	return false
}

// Run executes all fifteen reports against one snapshot.
func Run(s *store.Snapshot, now time.Time) ([]Table, error) {
	return RunReports(Reports(), s, now)
}

func RunReports(reports []Report, s *store.Snapshot, now time.Time) ([]Table, error) {
	tables := make([]Table, 0, len(reports))
	for _, r := range reports {
		table, err := r.Run(s, now)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", r.Key, err)
		}
		rlog.Debugf("Report %s returned %d rows", r.Key, len(table.Rows))
		tables = append(tables, table)
	}
	return tables, nil
}

// tableOf flattens query rows into strings, one column per json-tagged field.
func tableOf[T any](number int, key, title string, rows []T) (Table, error) {
	rowType := reflect.TypeOf((*T)(nil)).Elem()
	if rowType.Kind() != reflect.Struct {
		return Table{}, fmt.Errorf("rows of %s are not structs", rowType)
	}

	columns := make([]string, 0, rowType.NumField())
	for i := 0; i < rowType.NumField(); i++ {
		columns = append(columns, columnName(rowType.Field(i)))
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		value := reflect.ValueOf(row)
		cell := make([]string, 0, len(columns))
		for i := 0; i < value.NumField(); i++ {
			cell = append(cell, formatCell(value.Field(i).Interface()))
		}
		cells = append(cells, cell)
	}
	return Table{Number: number, Key: key, Title: title, Columns: columns, Rows: cells}, nil
}

func columnName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		return field.Name
	}
	return name
}

func formatCell(v interface{}) string {
	switch v := v.(type) {
	case decimal.Decimal:
		return v.StringFixed(2)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Render writes the tables in the given output format.
func Render(w io.Writer, format string, tables []Table) error {
	switch format {
	case constants.OUTPUT_FORMAT_TEXT:
		return RenderText(w, tables)
	case constants.OUTPUT_FORMAT_JSON:
		return RenderJSON(w, tables)
	default:
		return fmt.Errorf("%s %q", constants.UNKNOWN_OUTPUT_FORMAT, format)
	}
}

func ValidateFormat(format string) error {
	if format != constants.OUTPUT_FORMAT_TEXT && format != constants.OUTPUT_FORMAT_JSON {
		return fmt.Errorf("%s %q", constants.UNKNOWN_OUTPUT_FORMAT, format)
	}
	return nil
}

// RenderText prints one aligned table per report, titled "Qn. title".
func RenderText(w io.Writer, tables []Table) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Q%d. %s\n", table.Number, table.Title); err != nil {
			return err
		}
		if len(table.Rows) == 0 {
			if _, err := fmt.Fprintln(w, "(no rows)"); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		rules := make([]string, 0, len(table.Columns))
		for _, column := range table.Columns {
			rules = append(rules, strings.Repeat("-", len(column)))
		}
		fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
		fmt.Fprintln(tw, strings.Join(rules, "\t"))
		for _, row := range table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func RenderJSON(w io.Writer, tables []Table) error {
	if tables == nil {
		tables = []Table{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tables); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
