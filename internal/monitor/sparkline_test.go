package monitor

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		width  int
		expect string
	}{
		{"empty", nil, 10, ""},
		{"zero width", []float64{50}, 0, ""},
		{"fixed scale", []float64{0, 50, 100}, 10, "▁▅█"},
		{"flat high stays high", []float64{90, 90}, 10, "▇▇"},
		{"clamps out of range", []float64{-5, 140}, 10, "▁█"},
		{"keeps most recent", []float64{0, 0, 100, 100}, 2, "██"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Sparkline(tt.data, tt.width))
		})
	}
}

func TestPushHistory(t *testing.T) {
	var h []float64
	for i := 0; i < HistorySize+5; i++ {
		h = pushHistory(h, float64(i))
	}

	assert.Len(t, h, HistorySize)
	assert.Equal(t, 5.0, h[0])
	assert.Equal(t, float64(HistorySize+4), h[len(h)-1])
	assert.Equal(t, HistorySize, utf8.RuneCountInString(Sparkline(h, HistorySize)))
}
