package analysis

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 2.5, 2.5},
		{"int", 7, 7},
		{"int64", int64(-3), -3},
		{"uint8", uint8(4), 4},
		{"numeric string", " 12.75 ", 12.75},
		{"scientific", "1e3", 1000},
		{"text", "abc", 0},
		{"thousands separator", "1,000", 0},
		{"bool", true, 1},
		{"json number", json.Number("3.5"), 3.5},
		{"bytes", []byte("8"), 8},
		{"nan", math.NaN(), 0},
		{"inf string", "Inf", 0},
		{"time", time.Now(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toFloat(tt.in))
		})
	}
}

func TestToDate(t *testing.T) {
	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"2024-01-02", "2024-01-02", true},
		{"2024-01-02 10:11:12", "2024-01-02", true},
		{"2024-01-02T10:11:12+03:00", "2024-01-02", true},
		{"2024/01/02", "2024-01-02", true},
		{"01/02/2024", "2024-01-02", true},
		{"1/2/2024", "2024-01-02", true},
		{"02.01.2024", "2024-01-02", true},
		{"Jan 2, 2024", "2024-01-02", true},
		{time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC), "2024-01-02", true},
		{"", "", false},
		{"yesterday", "", false},
		{45292.0, "", false},
		{nil, "", false},
		{time.Time{}, "", false},
	}
	for _, tt := range tests {
		got, ok := toDate(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		if ok {
			assert.Equal(t, tt.want, got.Format("2006-01-02"), "%v", tt.in)
		}
	}
}

func TestToLabel(t *testing.T) {
	assert.Equal(t, " Books", toLabel(" Books"))
	assert.Equal(t, "3", toLabel(3.0))
	assert.Equal(t, "1.5", toLabel(1.5))
	assert.Equal(t, "42", toLabel(int64(42)))
	assert.Equal(t, "", toLabel(nil))
}
