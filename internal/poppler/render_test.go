package poppler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRasterDims(t *testing.T) {
	tests := []struct {
		name  string
		size  PageSize
		dpi   int
		wantW int
		wantH int
	}{
		{
			name:  "letter at preview dpi",
			size:  PageSize{Width: 612, Height: 792},
			dpi:   DefaultPreviewDPI,
			wantW: 1275,
			wantH: 1650,
		},
		{
			name:  "a4 at preview dpi",
			size:  PageSize{Width: 595.276, Height: 841.89},
			dpi:   150,
			wantW: 1240,
			wantH: 1754,
		},
		{
			name:  "letter at 72 dpi is point-for-pixel",
			size:  PageSize{Width: 612, Height: 792},
			dpi:   72,
			wantW: 612,
			wantH: 792,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := RasterDims(tt.size, tt.dpi)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
