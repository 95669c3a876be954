package sqlite

import (
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ScanSessionValue scans a single session value from a database row
func ScanSessionValue(scanner Scanner) (*SessionValue, error) {
	value := &SessionValue{}
	var updatedAt string

	if err := scanner.Scan(&value.Key, &value.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	value.UpdatedAt = t

	return value, nil
}

// ScanSessionValues scans multiple session values from database rows
func ScanSessionValues(rows Rows) ([]*SessionValue, error) {
	var values []*SessionValue
	for rows.Next() {
		value, err := ScanSessionValue(rows)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}
