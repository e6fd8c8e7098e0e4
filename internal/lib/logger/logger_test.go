package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(envProd, &buf)

	log.Debug("hidden")
	log.Info("visible", "key", "value")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "visible", got["msg"])
	assert.Equal(t, "value", got["key"])
}

func TestNew_LocalWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(envLocal, &buf)

	log.Debug("debug enabled")

	assert.Contains(t, buf.String(), "msg=\"debug enabled\"")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
