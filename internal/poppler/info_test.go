package poppler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInfoReport = `Title:          Example Document
Creator:        LaTeX with hyperref
Producer:       pdfTeX-1.40.25
Tagged:         no
Form:           none
Pages:          42
Encrypted:      no
Page size:      612 x 792 pts (letter)
File size:      123456 bytes
Optimized:      no
PDF version:    1.5
`

func TestParsePageCount(t *testing.T) {
	count, err := parsePageCount(sampleInfoReport)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestParsePageCountMissing(t *testing.T) {
	_, err := parsePageCount("Title: no pages line here\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseableOutput)
}

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		name     string
		report   string
		expected PageSize
	}{
		{
			name:     "letter with annotation",
			report:   "Page    1 size: 612 x 792 pts (letter)\nPage    1 rot:  0\n",
			expected: PageSize{Width: 612, Height: 792},
		},
		{
			name:     "a4 decimal size",
			report:   "Page    3 size: 595.276 x 841.89 pts (A4)\n",
			expected: PageSize{Width: 595.276, Height: 841.89},
		},
		{
			name:     "no trailing annotation",
			report:   "Page 7 size: 200 x 300 pts\n",
			expected: PageSize{Width: 200, Height: 300},
		},
		{
			name:     "tight spacing around x",
			report:   "Page 1 size: 612x792 pts\n",
			expected: PageSize{Width: 612, Height: 792},
		},
		{
			name:     "embedded in full report",
			report:   "Producer: x\nPage    2 size: 841.89 x 595.276 pts (A4, landscape)\nFile size: 9 bytes\n",
			expected: PageSize{Width: 841.89, Height: 595.276},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePageSize(tt.report)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePageSizeUnparseable(t *testing.T) {
	tests := []struct {
		name   string
		report string
	}{
		{"empty report", ""},
		{"no size line", "Pages: 3\n"},
		{"document-level size line only", "Page size:      612 x 792 pts (letter)\n"},
		{"garbled dimensions", "Page 1 size: abc x def pts\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePageSize(tt.report)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseableOutput)
		})
	}
}
