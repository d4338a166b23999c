package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{2*time.Minute + 3*time.Second, "2m 3s"},
		{5*time.Hour + 4*time.Second, "5h 0m 4s"},
		{72*time.Hour + 30*time.Minute + 15*time.Second, "3d 0h 30m 15s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.in), tt.in.String())
	}
}

func TestFormatLocal(t *testing.T) {
	assert.Equal(t, "-", FormatLocal(time.Time{}))

	ts := time.Date(2024, time.March, 4, 5, 6, 7, 0, time.Local)
	assert.Equal(t, "Mon Mar 4 05:06:07 2024", FormatLocal(ts))
}
