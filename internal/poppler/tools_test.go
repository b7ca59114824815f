package poppler

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDiscoverEmptyPathNamesAllTools(t *testing.T) {
	t.Setenv("PATH", "")

	_, err := Discover(testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), InfoTool)
	assert.Contains(t, err.Error(), RasterTool)
	assert.Contains(t, err.Error(), VectorTool)
}

func TestWorkdirLifecycle(t *testing.T) {
	w, err := NewWorkdir(testLogger())
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	w.Cleanup()
	assert.NoDirExists(t, w.Dir())
}
