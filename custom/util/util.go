package util

import (
	"database/sql"
	"database/sql/driver"
	"delivery_analytics/constants"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/romana/rlog"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
)

type DbConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SslMode  string `yaml:"sslmode"`
}

type AppConfig struct {
	Postgres       DbConfig   `yaml:"postgres"`
	Replicas       []DbConfig `yaml:"replicas"`
	Seed_file      string     `yaml:"seed_file"`
	Output_format  string     `yaml:"output_format"`
	Reference_date string     `yaml:"reference_date"`
}

// GetConf loads the yaml config file. A missing file leaves the defaults in place.
func (c *AppConfig) GetConf(fileName string) (*AppConfig, error) {
	c.Output_format = constants.OUTPUT_FORMAT_TEXT
	yamlFile, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			rlog.Warnf("Config file %s not found, using defaults", fileName)
			return c, nil
		}
		return nil, fmt.Errorf("read config %s: %w", fileName, err)
	}
	err = yaml.Unmarshal(yamlFile, c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", fileName, err)
	}
	return c, nil
}

// ReferenceTime returns the configured reference date, or now when none is set.
func (c *AppConfig) ReferenceTime(now time.Time) (time.Time, error) {
	if c.Reference_date == "" {
		return now, nil
	}
	ref, err := time.ParseInLocation(constants.DATE_LAYOUT, c.Reference_date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", constants.INVALID_REFERENCE_DATE, c.Reference_date, err)
	}
	return ref, nil
}

func (c DbConfig) IsSet() bool {
	return c.Host != "" && c.Database != ""
}

func (c DbConfig) Dsn() string {
	sslMode := c.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
}

// Dialector opens connections through the lib/pq driver registered above.
func (c DbConfig) Dialector() gorm.Dialector {
	return postgres.New(postgres.Config{
		DriverName: constants.POSTGRES_DRIVER,
		DSN:        c.Dsn(),
	})
}

// OpenDatabase connects to the primary and registers any replicas for reads.
func OpenDatabase(config *AppConfig) (*gorm.DB, error) {
	if !config.Postgres.IsSet() {
		return nil, errors.New(constants.DATABASE_NOT_CONFIGURED)
	}
	db, err := gorm.Open(config.Postgres.Dialector(), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if len(config.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(config.Replicas))
		for _, replica := range config.Replicas {
			replicas = append(replicas, replica.Dialector())
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to register replicas: %w", err)
		}
		rlog.Infof("Registered %d read replicas", len(replicas))
	}

	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

// DbMock For unit test usage
func DbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		t.Fatal(err)
	}

	return sqldb, gormdb, mock
}

// ObjectToRows For unit test usage, columns are taken from the json tags
func ObjectToRows(object interface{}) (*sqlmock.Rows, error) {
	buf, err := json.Marshal(object)
	if err != nil {
		return nil, err
	}
	rowMap := make(map[string]interface{})
	err = json.Unmarshal(buf, &rowMap)
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0)
	values := make([]driver.Value, 0)
	for k, v := range rowMap {
		columns = append(columns, k)
		values = append(values, v)
	}
	return sqlmock.NewRows(columns).AddRow(values...), nil
}
