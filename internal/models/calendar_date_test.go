package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		input   string
		want    CalendarDate
		wantErr bool
	}{
		{input: "2019-01-01", want: CalendarDate{2019, time.January, 1}},
		{input: " 2024-02-29 ", want: CalendarDate{2024, time.February, 29}},
		{input: "2019-01-03T23:59:59Z", want: CalendarDate{2019, time.January, 3}},
		{input: "2019-01-03T23:30:00-05:00", want: CalendarDate{2019, time.January, 3}},
		{input: "2023-02-29", wantErr: true},
		{input: "2019-1-1", wantErr: true},
		{input: "03/01/2019", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCalendarDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalendarDate_Compare(t *testing.T) {
	a := MustParseCalendarDate("2019-01-31")
	b := MustParseCalendarDate("2019-02-01")
	c := MustParseCalendarDate("2020-01-01")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(MustParseCalendarDate("2019-01-31")))
	assert.True(t, a.Before(b))
	assert.True(t, c.After(a))
	assert.False(t, a.Before(a))
}

func TestCalendarDate_Format(t *testing.T) {
	d := MustParseCalendarDate("2019-03-07")

	assert.Equal(t, "2019-03", d.MonthKey())
	assert.Equal(t, "2019-03-07", d.String())
}

func TestMustParseCalendarDate_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseCalendarDate("bad") })
}

func TestDateFilter_Matches(t *testing.T) {
	year, month, day := 2019, 1, 3
	d := MustParseCalendarDate("2019-01-03")

	assert.True(t, DateFilter{}.Matches(d))
	assert.True(t, DateFilter{}.IsEmpty())
	assert.True(t, DateFilter{Year: &year, Month: &month, Day: &day}.Matches(d))

	other := 2
	assert.False(t, DateFilter{Month: &other}.Matches(d))
	assert.False(t, DateFilter{Year: &year, Day: &other}.Matches(d))
	assert.False(t, DateFilter{Year: &year}.IsEmpty())
}
