package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var ALL_ANALYTICS_TABLES []interface{} = []interface{}{
	Customer{}, Restaurant{}, Rider{}, Delivery{}, Order{},
}

// Column names follow the json tags so seed files, database rows and report
// columns share one vocabulary.

type Customer struct {
	ID      uint   `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	Name    string `json:"customer_name" gorm:"column:customer_name;not null"`
	RegDate Date   `json:"reg_date" gorm:"column:reg_date"`
}

type Restaurant struct {
	ID           uint   `json:"restaurant_id" gorm:"column:restaurant_id;primaryKey"`
	Name         string `json:"restaurant_name" gorm:"column:restaurant_name;not null"`
	City         string `json:"city" gorm:"column:city;index"`
	OpeningHours string `json:"opening_hours" gorm:"column:opening_hours"`
}

type Rider struct {
	ID     uint   `json:"rider_id" gorm:"column:rider_id;primaryKey"`
	Name   string `json:"rider_name" gorm:"column:rider_name;not null"`
	SignUp Date   `json:"sign_up" gorm:"column:sign_up"`
}

type Delivery struct {
	ID           uint         `json:"delivery_id" gorm:"column:delivery_id;primaryKey"`
	RiderId      uint         `json:"rider_id" gorm:"column:rider_id;index;not null"`
	Status       string       `json:"delivery_status" gorm:"column:delivery_status;not null"`
	DeliveryTime DeliveryTime `json:"delivery_time" gorm:"column:delivery_time"`
}

type Order struct {
	ID           uint            `json:"order_id" gorm:"column:order_id;primaryKey"`
	CustomerId   uint            `json:"customer_id" gorm:"column:customer_id;index;not null"`
	RestaurantId uint            `json:"restaurant_id" gorm:"column:restaurant_id;index;not null"`
	OrderItem    string          `json:"order_item" gorm:"column:order_item"`
	OrderDate    Date            `json:"order_date" gorm:"column:order_date;index;not null"`
	OrderTime    datatypes.Time  `json:"order_time" gorm:"column:order_time;not null"`
	Status       string          `json:"order_status" gorm:"column:order_status;index;not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:decimal(10,2);not null"`
}
