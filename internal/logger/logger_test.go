package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLoggingThroughObserver(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Replace(zap.New(core))
	defer SetVerbose(false)

	Info("syncing %d records", 3)
	Warn("model response was not JSON")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "syncing 3 records", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}
