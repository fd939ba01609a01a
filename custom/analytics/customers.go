package analytics

import (
	"delivery_analytics/constants"
	"delivery_analytics/custom/store"
	"github.com/shopspring/decimal"
	"sort"
	"time"
)

type ActiveCustomersRow struct {
	ActiveCustomers int `json:"active_customers"`
}

type CustomerSpendRow struct {
	CustomerId   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

type CustomerOrdersRow struct {
	CustomerId   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	TotalOrders  int    `json:"total_orders"`
}

// ActiveCustomers counts customers who ordered in the last 30 days.
func ActiveCustomers(s *store.Snapshot, now time.Time) []ActiveCustomersRow {
	return ActiveCustomersWithin(s, now, constants.ACTIVE_CUSTOMER_WINDOW_DAYS)
}

// ActiveCustomersWithin counts distinct customers with order_date >= today-days.
// An empty snapshot gives no row at all.
func ActiveCustomersWithin(s *store.Snapshot, now time.Time, days int) []ActiveCustomersRow {
	orders := s.Orders()
	if len(orders) == 0 {
		return []ActiveCustomersRow{}
	}
	start := windowStart(now, days)
	active := make(map[uint]bool)
	for _, o := range orders {
		if !orderDay(o.OrderDate).Before(start) {
			active[o.CustomerId] = true
		}
	}
	return []ActiveCustomersRow{{ActiveCustomers: len(active)}}
}

// TopSpenders ranks customers by the total of their completed orders.
func TopSpenders(s *store.Snapshot, _ time.Time) []CustomerSpendRow {
	totals := make(map[uint]decimal.Decimal)
	for _, o := range s.Orders() {
		if o.Status != constants.STATUS_COMPLETED {
			continue
		}
		totals[o.CustomerId] = totals[o.CustomerId].Add(o.TotalAmount)
	}

	rows := make([]CustomerSpendRow, 0, len(totals))
	for id, total := range totals {
		customer, ok := s.Customer(id)
		if !ok {
			continue
		}
		rows = append(rows, CustomerSpendRow{CustomerId: id, CustomerName: customer.Name, TotalSpent: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].TotalSpent.Cmp(rows[j].TotalSpent); c != 0 {
			return c > 0
		}
		return rows[i].CustomerId < rows[j].CustomerId
	})
	return limit(rows, constants.TOP_SPENDERS_LIMIT)
}

// FrequentCustomers lists customers with more than five orders of any status.
func FrequentCustomers(s *store.Snapshot, _ time.Time) []CustomerOrdersRow {
	counts := make(map[uint]int)
	for _, o := range s.Orders() {
		counts[o.CustomerId]++
	}

	rows := make([]CustomerOrdersRow, 0)
	for id, count := range counts {
		if count <= constants.FREQUENT_CUSTOMER_MIN_ORDERS {
			continue
		}
		customer, ok := s.Customer(id)
		if !ok {
			continue
		}
		rows = append(rows, CustomerOrdersRow{CustomerId: id, CustomerName: customer.Name, TotalOrders: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalOrders != rows[j].TotalOrders {
			return rows[i].TotalOrders > rows[j].TotalOrders
		}
		return rows[i].CustomerId < rows[j].CustomerId
	})
	return rows
}
