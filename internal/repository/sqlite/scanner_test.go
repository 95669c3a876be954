package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []string
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}
	for i, d := range dest {
		*(d.(*string)) = ts.data[i]
	}
	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows [][]string
	pos  int
	err  error
}

func (tr *TestRows) Next() bool {
	tr.pos++
	return tr.pos <= len(tr.rows)
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return (&TestScanner{data: tr.rows[tr.pos-1]}).Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanSessionValue(t *testing.T) {
	t.Run("scans a row", func(t *testing.T) {
		value, err := ScanSessionValue(&TestScanner{data: []string{"token", "abc", "2024-01-15T10:30:45Z"}})
		require.NoError(t, err)
		assert.Equal(t, "token", value.Key)
		assert.Equal(t, "abc", value.Value)
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC), value.UpdatedAt)
	})

	t.Run("propagates scan errors", func(t *testing.T) {
		_, err := ScanSessionValue(&TestScanner{err: errors.New("scan failed")})
		assert.EqualError(t, err, "scan failed")
	})

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		_, err := ScanSessionValue(&TestScanner{data: []string{"token", "abc", "yesterday"}})
		assert.Error(t, err)
	})
}

func TestScanSessionValues(t *testing.T) {
	rows := &TestRows{rows: [][]string{
		{"token", "abc", "2024-01-15T10:30:45Z"},
		{"user", "{}", "2024-01-15T10:30:46Z"},
	}}

	values, err := ScanSessionValues(rows)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "token", values[0].Key)
	assert.Equal(t, "user", values[1].Key)

	_, err = ScanSessionValues(&TestRows{err: errors.New("iteration failed")})
	assert.EqualError(t, err, "iteration failed")
}

func TestFormatTimeForDB(t *testing.T) {
	assert.Equal(t, "2024-01-15T10:30:45Z", FormatTimeForDB(time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)))
	assert.Equal(t, "2024-06-15T14:30:00-05:00", FormatTimeForDB(time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600))))

	parsed, err := ParseTimeFromDB("2024-06-15T14:30:00-05:00")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC)))
}
