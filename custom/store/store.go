package store

import (
	"delivery_analytics/model"
	"fmt"
)

// Snapshot is an immutable, memory-resident copy of the five tables. Rows keep
// the order they were loaded in. A nil *Snapshot reads as empty.
type Snapshot struct {
	customers   []model.Customer
	restaurants []model.Restaurant
	riders      []model.Rider
	deliveries  []model.Delivery
	orders      []model.Order

	customerIdx   map[uint]int
	restaurantIdx map[uint]int
	riderIdx      map[uint]int
}

func NewSnapshot(customers []model.Customer, restaurants []model.Restaurant, riders []model.Rider,
	deliveries []model.Delivery, orders []model.Order) *Snapshot {
	s := &Snapshot{
		customers:     append([]model.Customer(nil), customers...),
		restaurants:   append([]model.Restaurant(nil), restaurants...),
		riders:        append([]model.Rider(nil), riders...),
		deliveries:    append([]model.Delivery(nil), deliveries...),
		orders:        append([]model.Order(nil), orders...),
		customerIdx:   make(map[uint]int, len(customers)),
		restaurantIdx: make(map[uint]int, len(restaurants)),
		riderIdx:      make(map[uint]int, len(riders)),
	}
	// First row wins on duplicate keys; Validate reports the duplicates.
	for i, c := range s.customers {
		if _, ok := s.customerIdx[c.ID]; !ok {
			s.customerIdx[c.ID] = i
		}
	}
	for i, r := range s.restaurants {
		if _, ok := s.restaurantIdx[r.ID]; !ok {
			s.restaurantIdx[r.ID] = i
		}
	}
	for i, r := range s.riders {
		if _, ok := s.riderIdx[r.ID]; !ok {
			s.riderIdx[r.ID] = i
		}
	}
	return s
}

// The accessors return the backing slices; callers must not modify them.

func (s *Snapshot) Customers() []model.Customer {
	if s == nil {
		return nil
	}
	return s.customers
}

func (s *Snapshot) Restaurants() []model.Restaurant {
	if s == nil {
		return nil
	}
	return s.restaurants
}

func (s *Snapshot) Riders() []model.Rider {
	if s == nil {
		return nil
	}
	return s.riders
}

func (s *Snapshot) Deliveries() []model.Delivery {
	if s == nil {
		return nil
	}
	return s.deliveries
}

func (s *Snapshot) Orders() []model.Order {
	if s == nil {
		return nil
	}
	return s.orders
}

func (s *Snapshot) Customer(id uint) (model.Customer, bool) {
	if s == nil {
		return model.Customer{}, false
	}
	i, ok := s.customerIdx[id]
	if !ok {
		return model.Customer{}, false
	}
	return s.customers[i], true
}

func (s *Snapshot) Restaurant(id uint) (model.Restaurant, bool) {
	if s == nil {
		return model.Restaurant{}, false
	}
	i, ok := s.restaurantIdx[id]
	if !ok {
		return model.Restaurant{}, false
	}
	return s.restaurants[i], true
}

func (s *Snapshot) Rider(id uint) (model.Rider, bool) {
	if s == nil {
		return model.Rider{}, false
	}
	i, ok := s.riderIdx[id]
	if !ok {
		return model.Rider{}, false
	}
	return s.riders[i], true
}

// IsEmpty reports whether every table is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Customers()) == 0 && len(s.Restaurants()) == 0 && len(s.Riders()) == 0 &&
		len(s.Deliveries()) == 0 && len(s.Orders()) == 0
}

// Validate lists ingestion problems: duplicate keys, dangling references and
// negative amounts. Queries do not depend on it, a dangling reference is just a join miss.
func (s *Snapshot) Validate() []string {
	problems := make([]string, 0)
	problems = append(problems, duplicateKeys("customers", s.Customers(), func(c model.Customer) uint { return c.ID })...)
	problems = append(problems, duplicateKeys("restaurants", s.Restaurants(), func(r model.Restaurant) uint { return r.ID })...)
	problems = append(problems, duplicateKeys("riders", s.Riders(), func(r model.Rider) uint { return r.ID })...)
	problems = append(problems, duplicateKeys("deliveries", s.Deliveries(), func(d model.Delivery) uint { return d.ID })...)
	problems = append(problems, duplicateKeys("orders", s.Orders(), func(o model.Order) uint { return o.ID })...)

	for _, d := range s.Deliveries() {
		if _, ok := s.Rider(d.RiderId); !ok {
			problems = append(problems, fmt.Sprintf("delivery %d references missing rider %d", d.ID, d.RiderId))
		}
	}
	for _, o := range s.Orders() {
		if _, ok := s.Customer(o.CustomerId); !ok {
			problems = append(problems, fmt.Sprintf("order %d references missing customer %d", o.ID, o.CustomerId))
		}
		if _, ok := s.Restaurant(o.RestaurantId); !ok {
			problems = append(problems, fmt.Sprintf("order %d references missing restaurant %d", o.ID, o.RestaurantId))
		}
		if o.TotalAmount.IsNegative() {
			problems = append(problems, fmt.Sprintf("order %d has negative total_amount %s", o.ID, o.TotalAmount.String()))
		}
	}
	return problems
}

func duplicateKeys[T any](table string, rows []T, key func(T) uint) []string {
	seen := make(map[uint]bool, len(rows))
	problems := make([]string, 0)
	for _, row := range rows {
		id := key(row)
		if seen[id] {
			problems = append(problems, fmt.Sprintf("%s has duplicate key %d", table, id))
		}
		seen[id] = true
	}
	return problems
}
