package dateutil_test

import (
	"testing"
	"time"

	"fleetops/internal/shared/dateutil"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d, err := dateutil.ParseDate("2027-03-05")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2027, 3, 5, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("negative wrong layout", func(t *testing.T) {
		_, err := dateutil.ParseDate("05-03-2027")
		assert.Error(t, err)
	})

	t.Run("negative unpadded", func(t *testing.T) {
		_, err := dateutil.ParseDate("2027-3-5")
		assert.Error(t, err)
	})

	t.Run("negative empty", func(t *testing.T) {
		_, err := dateutil.ParseDate("")
		assert.Error(t, err)
	})
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "with seconds", in: "08:30:00", want: 30600},
		{name: "without seconds", in: "08:30", want: 30600},
		{name: "midnight", in: "00:00:00", want: 0},
		{name: "end of day", in: "23:59:59", want: 86399},
		{name: "negative am pm", in: "8am", wantErr: true},
		{name: "negative hour out of range", in: "25:00", wantErr: true},
		{name: "negative empty", in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dateutil.ParseClock(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:30:00", dateutil.FormatClock(30600))
	assert.Equal(t, "00:00:00", dateutil.FormatClock(0))
	assert.Equal(t, "23:59:59", dateutil.FormatClock(86399))
}

func TestMidnight(t *testing.T) {
	in := time.Date(2027, 6, 1, 15, 4, 5, 999, time.UTC)
	assert.Equal(t, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), dateutil.Midnight(in))
}
