package analytics

import (
	"delivery_analytics/constants"
	"delivery_analytics/custom/store"
	"github.com/shopspring/decimal"
	"sort"
	"time"
)

type RiderDeliveryTimeRow struct {
	RiderId         uint            `json:"rider_id"`
	RiderName       string          `json:"rider_name"`
	TotalDeliveries int             `json:"total_deliveries"`
	AvgDeliveryTime decimal.Decimal `json:"avg_delivery_time"`
}

type RiderDeliveriesRow struct {
	RiderId         uint   `json:"rider_id"`
	RiderName       string `json:"rider_name"`
	TotalDeliveries int    `json:"total_deliveries"`
}

type minutesTally struct {
	sum   decimal.Decimal
	count int
}

// FastestRiders ranks riders by average minutes over completed deliveries whose
// delivery_time starts with a number. Unparseable times are left out of both the
// average and the count, and riders need at least 10 counted deliveries.
func FastestRiders(s *store.Snapshot, _ time.Time) []RiderDeliveryTimeRow {
	tallies := make(map[uint]*minutesTally)
	for _, d := range s.Deliveries() {
		if d.Status != constants.STATUS_COMPLETED {
			continue
		}
		minutes, ok := d.DeliveryTime.Minutes()
		if !ok {
			continue
		}
		addMinutes(tallies, d.RiderId, minutes)
	}

	rows := riderTimeRows(s, tallies, constants.FASTEST_RIDERS_MIN_DELIVERIES)
	return limit(rows, constants.FASTEST_RIDERS_LIMIT)
}

// AverageDeliveryTime averages every delivery of a rider, any status. Only text
// ending in "minutes" contributes its number, everything else contributes 0.
func AverageDeliveryTime(s *store.Snapshot, _ time.Time) []RiderDeliveryTimeRow {
	tallies := make(map[uint]*minutesTally)
	for _, d := range s.Deliveries() {
		addMinutes(tallies, d.RiderId, d.DeliveryTime.MinutesOrZero())
	}
	return riderTimeRows(s, tallies, 1)
}

// TopRidersLastMonth counts completed deliveries per rider, keeping only deliveries
// whose delivery_id equals the order_id of a completed order placed last calendar month.
//
// The delivery_id/order_id match compares two unrelated key spaces. It is kept
// as the report has always computed it; see DESIGN.md before changing it.
func TopRidersLastMonth(s *store.Snapshot, now time.Time) []RiderDeliveriesRow {
	from, to := lastMonth(now)
	orderIds := make(map[uint]bool)
	for _, o := range s.Orders() {
		day := orderDay(o.OrderDate)
		if o.Status == constants.STATUS_COMPLETED && !day.Before(from) && day.Before(to) {
			orderIds[o.ID] = true
		}
	}

	counts := make(map[uint]int)
	for _, d := range s.Deliveries() {
		if d.Status == constants.STATUS_COMPLETED && orderIds[d.ID] {
			counts[d.RiderId]++
		}
	}

	rows := make([]RiderDeliveriesRow, 0, len(counts))
	for id, count := range counts {
		rider, ok := s.Rider(id)
		if !ok {
			continue
		}
		rows = append(rows, RiderDeliveriesRow{RiderId: id, RiderName: rider.Name, TotalDeliveries: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalDeliveries != rows[j].TotalDeliveries {
			return rows[i].TotalDeliveries > rows[j].TotalDeliveries
		}
		return rows[i].RiderId < rows[j].RiderId
	})
	return limit(rows, constants.TOP_RIDERS_LAST_MONTH_LIMIT)
}

func addMinutes(tallies map[uint]*minutesTally, riderId uint, minutes int) {
	tally, ok := tallies[riderId]
	if !ok {
		tally = &minutesTally{}
		tallies[riderId] = tally
	}
	tally.sum = tally.sum.Add(decimal.NewFromInt(int64(minutes)))
	tally.count++
}

// riderTimeRows joins tallies to riders and sorts them fastest first.
func riderTimeRows(s *store.Snapshot, tallies map[uint]*minutesTally, minDeliveries int) []RiderDeliveryTimeRow {
	rows := make([]RiderDeliveryTimeRow, 0, len(tallies))
	for id, tally := range tallies {
		if tally.count < minDeliveries {
			continue
		}
		rider, ok := s.Rider(id)
		if !ok {
			continue
		}
		rows = append(rows, RiderDeliveryTimeRow{
			RiderId:         id,
			RiderName:       rider.Name,
			TotalDeliveries: tally.count,
			AvgDeliveryTime: average(tally.sum, tally.count),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].AvgDeliveryTime.Cmp(rows[j].AvgDeliveryTime); c != 0 {
			return c < 0
		}
		return rows[i].RiderId < rows[j].RiderId
	})
	return rows
}
