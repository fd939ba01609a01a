package analytics

import (
	"delivery_analytics/constants"
	"delivery_analytics/custom/store"
	"github.com/shopspring/decimal"
	"sort"
	"time"
)

type ItemOrdersRow struct {
	OrderItem   string `json:"order_item"`
	TotalOrders int    `json:"total_orders"`
}

type DailyRevenueRow struct {
	OrderDate    string          `json:"order_date"`
	DailyRevenue decimal.Decimal `json:"daily_revenue"`
}

type HourlyOrdersRow struct {
	OrderHour   int `json:"order_hour"`
	TotalOrders int `json:"total_orders"`
}

type StatusShareRow struct {
	OrderStatus string          `json:"order_status"`
	TotalOrders int             `json:"total_orders"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// PopularItems ranks order items by how often they were ordered, any status.
func PopularItems(s *store.Snapshot, _ time.Time) []ItemOrdersRow {
	counts := make(map[string]int)
	for _, o := range s.Orders() {
		counts[o.OrderItem]++
	}

	rows := make([]ItemOrdersRow, 0, len(counts))
	for item, count := range counts {
		rows = append(rows, ItemOrdersRow{OrderItem: item, TotalOrders: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalOrders != rows[j].TotalOrders {
			return rows[i].TotalOrders > rows[j].TotalOrders
		}
		return rows[i].OrderItem < rows[j].OrderItem
	})
	return limit(rows, constants.POPULAR_ITEMS_LIMIT)
}

// DailyRevenue sums completed order amounts per day over the last 30 days, oldest first.
func DailyRevenue(s *store.Snapshot, now time.Time) []DailyRevenueRow {
	start := windowStart(now, constants.DAILY_REVENUE_WINDOW_DAYS)
	revenue := make(map[time.Time]decimal.Decimal)
	for _, o := range s.Orders() {
		day := orderDay(o.OrderDate)
		if o.Status != constants.STATUS_COMPLETED || day.Before(start) {
			continue
		}
		revenue[day] = revenue[day].Add(o.TotalAmount)
	}

	days := make([]time.Time, 0, len(revenue))
	for day := range revenue {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	rows := make([]DailyRevenueRow, 0, len(days))
	for _, day := range days {
		rows = append(rows, DailyRevenueRow{OrderDate: day.Format(constants.DATE_LAYOUT), DailyRevenue: revenue[day]})
	}
	return rows
}

// OrdersByHour counts all orders by the hour of order_time.
func OrdersByHour(s *store.Snapshot, _ time.Time) []HourlyOrdersRow {
	counts := make(map[int]int)
	for _, o := range s.Orders() {
		hour := int(time.Duration(o.OrderTime).Hours()) % 24
		counts[hour]++
	}

	rows := make([]HourlyOrdersRow, 0, len(counts))
	for hour, count := range counts {
		rows = append(rows, HourlyOrdersRow{OrderHour: hour, TotalOrders: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalOrders != rows[j].TotalOrders {
			return rows[i].TotalOrders > rows[j].TotalOrders
		}
		return rows[i].OrderHour < rows[j].OrderHour
	})
	return rows
}

// StatusDistribution gives each order status as a percentage of all orders.
func StatusDistribution(s *store.Snapshot, _ time.Time) []StatusShareRow {
	orders := s.Orders()
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.Status]++
	}

	rows := make([]StatusShareRow, 0, len(counts))
	for status, count := range counts {
		rows = append(rows, StatusShareRow{
			OrderStatus: status,
			TotalOrders: count,
			Percentage:  percentage(count, len(orders)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalOrders != rows[j].TotalOrders {
			return rows[i].TotalOrders > rows[j].TotalOrders
		}
		return rows[i].OrderStatus < rows[j].OrderStatus
	})
	return rows
}
