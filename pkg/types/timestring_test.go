package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "morning", input: "09:00", want: "09:00"},
		{name: "afternoon", input: "14:30", want: "14:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := MustTimeString("23:30")

	end, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 24*60, end.Minutes())

	_, err = ts.AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("09:00")
	b := MustTimeString("09:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.True(t, a.Equal(MustTimeString("09:00")))
	assert.False(t, a.Equal(TimeString{}))
}

func TestTimeString_JSON(t *testing.T) {
	var payload struct {
		Time  TimeString  `json:"time"`
		Empty TimeString  `json:"empty"`
		List  []TimeString `json:"list"`
	}

	err := json.Unmarshal([]byte(`{"time":"10:30","empty":null,"list":["09:00","09:30"]}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, "10:30", payload.Time.String())
	assert.True(t, payload.Empty.IsZero())
	assert.Equal(t, []string{"09:00", "09:30"}, FormatTimeStrings(payload.List))

	out, err := json.Marshal(payload.Time)
	require.NoError(t, err)
	assert.JSONEq(t, `"10:30"`, string(out))

	err = json.Unmarshal([]byte(`{"time":"10h"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("14:30:00")))
	assert.Equal(t, "14:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("09:00").On(day)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), got)
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", FormatDate(d))
	assert.True(t, SameDay(d, time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, d, DateOnly(time.Date(2025, 6, 10, 13, 45, 0, 0, time.UTC)))

	_, err = ParseDate("10/06/2025")
	assert.Error(t, err)
}
