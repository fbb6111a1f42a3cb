package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebug_VerboseDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())
}

func TestDebug_VerboseEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
	}()
	SetVerbose(true)

	Debug("visible %s", "message")
	assert.Equal(t, "[DEBUG] visible message\n", buf.String())
}

func TestInfoAndWarn(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
	}()
	SetVerbose(true)

	Info("indexed %d entries", 3)
	Warn("stale revision")

	assert.Contains(t, buf.String(), "[INFO] indexed 3 entries\n")
	assert.Contains(t, buf.String(), "[WARN] stale revision\n")
}

func TestError_AlwaysPrinted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("fetch failed: %s", "timeout")
	assert.Equal(t, "[ERROR] fetch failed: timeout\n", buf.String())
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
