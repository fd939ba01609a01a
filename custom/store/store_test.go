package store

import (
	"delivery_analytics/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"testing"
)

var (
	testCustomers = []model.Customer{
		{ID: 1, Name: "Arjun Mehta"},
		{ID: 2, Name: "Priya Sharma"},
	}
	testRestaurants = []model.Restaurant{
		{ID: 1, Name: "Spice Route", City: "Metro", OpeningHours: "11:00 AM - 11:00 PM"},
	}
	testRiders = []model.Rider{
		{ID: 1, Name: "Ravi"},
	}
	testDeliveries = []model.Delivery{
		{ID: 1, RiderId: 1, Status: "Completed", DeliveryTime: "32 minutes"},
	}
	testOrders = []model.Order{
		{ID: 1, CustomerId: 1, RestaurantId: 1, OrderItem: "Biryani", Status: "Completed", TotalAmount: decimal.RequireFromString("42.50")},
	}
)

func TestSnapshotAccessors(t *testing.T) {
	snapshot := NewSnapshot(testCustomers, testRestaurants, testRiders, testDeliveries, testOrders)

	assert.Equal(t, testCustomers, snapshot.Customers())
	assert.Equal(t, testRestaurants, snapshot.Restaurants())
	assert.Equal(t, testRiders, snapshot.Riders())
	assert.Equal(t, testDeliveries, snapshot.Deliveries())
	assert.Equal(t, testOrders, snapshot.Orders())
	assert.False(t, snapshot.IsEmpty())

	customer, ok := snapshot.Customer(2)
	assert.True(t, ok)
	assert.Equal(t, "Priya Sharma", customer.Name)
	_, ok = snapshot.Customer(3)
	assert.False(t, ok)

	restaurant, ok := snapshot.Restaurant(1)
	assert.True(t, ok)
	assert.Equal(t, "Metro", restaurant.City)

	rider, ok := snapshot.Rider(1)
	assert.True(t, ok)
	assert.Equal(t, "Ravi", rider.Name)
}

func TestSnapshotCopiesInput(t *testing.T) {
	customers := []model.Customer{{ID: 1, Name: "Arjun Mehta"}}
	snapshot := NewSnapshot(customers, nil, nil, nil, nil)
	customers[0].Name = "changed"

	customer, _ := snapshot.Customer(1)
	assert.Equal(t, "Arjun Mehta", customer.Name)
}

func TestNilSnapshotIsEmpty(t *testing.T) {
	var snapshot *Snapshot
	assert.True(t, snapshot.IsEmpty())
	assert.Empty(t, snapshot.Orders())
	assert.Empty(t, snapshot.Deliveries())
	_, ok := snapshot.Restaurant(1)
	assert.False(t, ok)
	assert.Empty(t, snapshot.Validate())
}

func TestValidate(t *testing.T) {
	assert.Empty(t, NewSnapshot(testCustomers, testRestaurants, testRiders, testDeliveries, testOrders).Validate())

	orders := []model.Order{
		{ID: 1, CustomerId: 9, RestaurantId: 1, TotalAmount: decimal.NewFromInt(10)},
		{ID: 1, CustomerId: 1, RestaurantId: 7, TotalAmount: decimal.NewFromInt(-1)},
	}
	deliveries := []model.Delivery{{ID: 4, RiderId: 5}}
	problems := NewSnapshot(testCustomers, testRestaurants, testRiders, deliveries, orders).Validate()

	assert.ElementsMatch(t, []string{
		"orders has duplicate key 1",
		"delivery 4 references missing rider 5",
		"order 1 references missing customer 9",
		"order 1 references missing restaurant 7",
		"order 1 has negative total_amount -1",
	}, problems)
}

func TestDuplicateKeyFirstRowWins(t *testing.T) {
	riders := []model.Rider{{ID: 1, Name: "first"}, {ID: 1, Name: "second"}}
	rider, ok := NewSnapshot(nil, nil, riders, nil, nil).Rider(1)
	assert.True(t, ok)
	assert.Equal(t, "first", rider.Name)
}
