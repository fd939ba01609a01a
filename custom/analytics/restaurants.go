package analytics

import (
	"delivery_analytics/constants"
	"delivery_analytics/custom/store"
	"github.com/shopspring/decimal"
	"sort"
	"time"
)

type CityRestaurantsRow struct {
	City             string `json:"city"`
	TotalRestaurants int    `json:"total_restaurants"`
}

type RestaurantOrdersRow struct {
	RestaurantId   uint   `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TotalOrders    int    `json:"total_orders"`
}

type RestaurantCustomersRow struct {
	RestaurantId    uint   `json:"restaurant_id"`
	RestaurantName  string `json:"restaurant_name"`
	UniqueCustomers int    `json:"unique_customers"`
}

type CityCancellationRow struct {
	City             string          `json:"city"`
	TotalOrders      int             `json:"total_orders"`
	CancelledOrders  int             `json:"cancelled_orders"`
	CancellationRate decimal.Decimal `json:"cancellation_rate"`
}

type RestaurantOrderValueRow struct {
	RestaurantId   uint            `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
}

// RestaurantsPerCity counts restaurants in each city.
func RestaurantsPerCity(s *store.Snapshot, _ time.Time) []CityRestaurantsRow {
	counts := make(map[string]int)
	for _, r := range s.Restaurants() {
		counts[r.City]++
	}

	rows := make([]CityRestaurantsRow, 0, len(counts))
	for city, count := range counts {
		rows = append(rows, CityRestaurantsRow{City: city, TotalRestaurants: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRestaurants != rows[j].TotalRestaurants {
			return rows[i].TotalRestaurants > rows[j].TotalRestaurants
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

// TopRestaurants ranks restaurants by completed order count.
func TopRestaurants(s *store.Snapshot, _ time.Time) []RestaurantOrdersRow {
	counts := make(map[uint]int)
	for _, o := range s.Orders() {
		if o.Status == constants.STATUS_COMPLETED {
			counts[o.RestaurantId]++
		}
	}

	rows := make([]RestaurantOrdersRow, 0, len(counts))
	for id, count := range counts {
		restaurant, ok := s.Restaurant(id)
		if !ok {
			continue
		}
		rows = append(rows, RestaurantOrdersRow{RestaurantId: id, RestaurantName: restaurant.Name, TotalOrders: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalOrders != rows[j].TotalOrders {
			return rows[i].TotalOrders > rows[j].TotalOrders
		}
		return rows[i].RestaurantId < rows[j].RestaurantId
	})
	return limit(rows, constants.TOP_RESTAURANTS_LIMIT)
}

// UniqueCustomersPerRestaurant counts distinct customers per restaurant over all orders.
func UniqueCustomersPerRestaurant(s *store.Snapshot, _ time.Time) []RestaurantCustomersRow {
	customers := make(map[uint]map[uint]bool)
	for _, o := range s.Orders() {
		if customers[o.RestaurantId] == nil {
			customers[o.RestaurantId] = make(map[uint]bool)
		}
		customers[o.RestaurantId][o.CustomerId] = true
	}

	rows := make([]RestaurantCustomersRow, 0, len(customers))
	for id, seen := range customers {
		restaurant, ok := s.Restaurant(id)
		if !ok {
			continue
		}
		rows = append(rows, RestaurantCustomersRow{RestaurantId: id, RestaurantName: restaurant.Name, UniqueCustomers: len(seen)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UniqueCustomers != rows[j].UniqueCustomers {
			return rows[i].UniqueCustomers > rows[j].UniqueCustomers
		}
		return rows[i].RestaurantId < rows[j].RestaurantId
	})
	return rows
}

// CancellationRateByCity is the share of cancelled orders per restaurant city, in percent.
func CancellationRateByCity(s *store.Snapshot, _ time.Time) []CityCancellationRow {
	totals := make(map[string]int)
	cancelled := make(map[string]int)
	for _, o := range s.Orders() {
		restaurant, ok := s.Restaurant(o.RestaurantId)
		if !ok {
			continue
		}
		totals[restaurant.City]++
		if o.Status == constants.STATUS_CANCELLED {
			cancelled[restaurant.City]++
		}
	}

	rows := make([]CityCancellationRow, 0, len(totals))
	for city, total := range totals {
		rows = append(rows, CityCancellationRow{
			City:             city,
			TotalOrders:      total,
			CancelledOrders:  cancelled[city],
			CancellationRate: percentage(cancelled[city], total),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].CancellationRate.Cmp(rows[j].CancellationRate); c != 0 {
			return c > 0
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

// AverageOrderValue averages completed order amounts per restaurant.
func AverageOrderValue(s *store.Snapshot, _ time.Time) []RestaurantOrderValueRow {
	sums := make(map[uint]decimal.Decimal)
	counts := make(map[uint]int)
	for _, o := range s.Orders() {
		if o.Status != constants.STATUS_COMPLETED {
			continue
		}
		sums[o.RestaurantId] = sums[o.RestaurantId].Add(o.TotalAmount)
		counts[o.RestaurantId]++
	}

	rows := make([]RestaurantOrderValueRow, 0, len(counts))
	for id, count := range counts {
		restaurant, ok := s.Restaurant(id)
		if !ok {
			continue
		}
		rows = append(rows, RestaurantOrderValueRow{
			RestaurantId:   id,
			RestaurantName: restaurant.Name,
			AvgOrderValue:  average(sums[id], count),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].AvgOrderValue.Cmp(rows[j].AvgOrderValue); c != 0 {
			return c > 0
		}
		return rows[i].RestaurantId < rows[j].RestaurantId
	})
	return rows
}
