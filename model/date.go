package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"gorm.io/datatypes"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date column. Seed files may write it as "2006-01-02" or as
// an RFC 3339 timestamp; it is always written back as "2006-01-02".
type Date datatypes.Date

func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d *Date) Scan(value interface{}) error {
	return (*datatypes.Date)(d).Scan(value)
}

func (d Date) Value() (driver.Value, error) {
	return datatypes.Date(d).Value()
}

func (Date) GormDataType() string {
	return datatypes.Date{}.GormDataType()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time().Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if parsed, err := time.ParseInLocation(dateLayout, text, time.UTC); err == nil {
		*d = Date(parsed)
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return fmt.Errorf("date %q is neither %s nor RFC 3339", text, dateLayout)
	}
	*d = Date(parsed)
	return nil
}
