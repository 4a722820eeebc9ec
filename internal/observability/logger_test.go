package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTo_Formats(t *testing.T) {
	var jsonBuf bytes.Buffer
	NewLoggerTo(&jsonBuf, "info", "json").Info("station verified", "station_id", "8518750")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &rec))
	assert.Equal(t, "station verified", rec["msg"])
	assert.Equal(t, "8518750", rec["station_id"])

	var textBuf bytes.Buffer
	NewLoggerTo(&textBuf, "info", "TEXT").Info("station verified", "station_id", "8518750")
	assert.Contains(t, textBuf.String(), "station_id=8518750")
}

func TestNewLoggerTo_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "warn", "text")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
