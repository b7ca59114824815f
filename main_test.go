package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		value    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"ERROR", logrus.ErrorLevel},
		{"  info  ", logrus.InfoLevel},
		{"", logrus.WarnLevel},
		{"bogus", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			assert.Equal(t, tt.expected, parseLogLevel())
		})
	}
}

func TestValidateDPI(t *testing.T) {
	dpi, err := validateDPI(150)
	require.NoError(t, err)
	assert.Equal(t, 150, dpi)

	_, err = validateDPI(0)
	assert.Error(t, err)

	_, err = validateDPI(1200)
	assert.Error(t, err)
}
