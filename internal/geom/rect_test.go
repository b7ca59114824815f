package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingRect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected Rect
	}{
		{
			name:     "top-left to bottom-right",
			a:        Point{X: 10, Y: 20},
			b:        Point{X: 110, Y: 220},
			expected: Rect{X: 10, Y: 20, W: 100, H: 200},
		},
		{
			name:     "bottom-right to top-left",
			a:        Point{X: 110, Y: 220},
			b:        Point{X: 10, Y: 20},
			expected: Rect{X: 10, Y: 20, W: 100, H: 200},
		},
		{
			name:     "bottom-left to top-right",
			a:        Point{X: 10, Y: 220},
			b:        Point{X: 110, Y: 20},
			expected: Rect{X: 10, Y: 20, W: 100, H: 200},
		},
		{
			name:     "same point",
			a:        Point{X: 5, Y: 5},
			b:        Point{X: 5, Y: 5},
			expected: Rect{X: 5, Y: 5, W: 0, H: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundingRect(tt.a, tt.b)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got.W, 0)
			assert.GreaterOrEqual(t, got.H, 0)
		})
	}
}

func TestRectDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		rect       Rect
		degenerate bool
	}{
		{"zero rect", Rect{}, true},
		{"one pixel wide", Rect{W: 1, H: 100}, true},
		{"one pixel tall", Rect{W: 100, H: 1}, true},
		{"minimum usable", Rect{W: 2, H: 2}, false},
		{"normal selection", Rect{X: 100, Y: 100, W: 100, H: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.degenerate, tt.rect.Degenerate())
		})
	}
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Rect
		wantErr  bool
	}{
		{"plain", "10,20,30,40", Rect{X: 10, Y: 20, W: 30, H: 40}, false},
		{"spaces tolerated", " 10, 20, 30, 40 ", Rect{X: 10, Y: 20, W: 30, H: 40}, false},
		{"negative origin allowed", "-5,0,30,40", Rect{X: -5, Y: 0, W: 30, H: 40}, false},
		{"negative width rejected", "0,0,-30,40", Rect{}, true},
		{"too few components", "10,20,30", Rect{}, true},
		{"too many components", "10,20,30,40,50", Rect{}, true},
		{"non-numeric", "a,b,c,d", Rect{}, true},
		{"empty", "", Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRect(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
