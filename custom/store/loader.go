package store

import (
	"delivery_analytics/constants"
	"delivery_analytics/model"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/romana/rlog"
	"gorm.io/gorm"
	"os"
)

// SeedFile is the bulk-load document, one array per table. Dates are written
// as "2006-01-02" or RFC 3339 timestamps, times of day as "15:04:05".
type SeedFile struct {
	Customers   []model.Customer   `json:"customers"`
	Restaurants []model.Restaurant `json:"restaurants"`
	Riders      []model.Rider      `json:"riders"`
	Deliveries  []model.Delivery   `json:"deliveries"`
	Orders      []model.Order      `json:"orders"`
}

// LoadFromDB reads all five tables, each ordered by its primary key.
func LoadFromDB(db *gorm.DB) (*Snapshot, error) {
	customers, err := loadTable[model.Customer](db, "customer_id")
	if err != nil {
		return nil, err
	}
	restaurants, err := loadTable[model.Restaurant](db, "restaurant_id")
	if err != nil {
		return nil, err
	}
	riders, err := loadTable[model.Rider](db, "rider_id")
	if err != nil {
		return nil, err
	}
	deliveries, err := loadTable[model.Delivery](db, "delivery_id")
	if err != nil {
		return nil, err
	}
	orders, err := loadTable[model.Order](db, "order_id")
	if err != nil {
		return nil, err
	}
	rlog.Infof("Loaded snapshot from database: %d customers, %d restaurants, %d riders, %d deliveries, %d orders",
		len(customers), len(restaurants), len(riders), len(deliveries), len(orders))
	return NewSnapshot(customers, restaurants, riders, deliveries, orders), nil
}

func loadTable[T any](db *gorm.DB, key string) ([]T, error) {
	rows := make([]T, 0)
	if err := db.Order(key).Find(&rows).Error; err != nil {
		var table T
		return nil, fmt.Errorf("load %T: %w", table, err)
	}
	return rows, nil
}

// LoadFromFile reads a JSON seed file.
func LoadFromFile(fileName string) (*Snapshot, error) {
	buf, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", fileName, err)
	}
	seed := SeedFile{}
	if err = json.Unmarshal(buf, &seed); err != nil {
		return nil, fmt.Errorf("unmarshal seed file %s: %w", fileName, err)
	}
	rlog.Infof("Loaded snapshot from %s: %d customers, %d restaurants, %d riders, %d deliveries, %d orders",
		fileName, len(seed.Customers), len(seed.Restaurants), len(seed.Riders), len(seed.Deliveries), len(seed.Orders))
	return NewSnapshot(seed.Customers, seed.Restaurants, seed.Riders, seed.Deliveries, seed.Orders), nil
}

// Migrate creates or updates the five tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.ALL_ANALYTICS_TABLES...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed writes a snapshot to the database in a single transaction. Referenced
// tables go first; empty tables are skipped.
func Seed(db *gorm.DB, snapshot *Snapshot) error {
	if snapshot.IsEmpty() {
		return errors.New(constants.NOTHING_TO_SEED)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := createAll(tx, snapshot.Customers()); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Restaurants()); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Riders()); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Deliveries()); err != nil {
			return err
		}
		return createAll(tx, snapshot.Orders())
	})
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	// Create fills generated keys back into its argument, so hand it a copy.
	batch := append([]T(nil), rows...)
	if err := tx.Create(&batch).Error; err != nil {
		var row T
		return fmt.Errorf("seed %T: %w", row, err)
	}
	rlog.Infof("Seeded %d rows of %T", len(batch), batch[0])
	return nil
}
