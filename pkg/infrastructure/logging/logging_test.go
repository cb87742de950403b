package logging

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitLoggerWithWriter(&buf, "WARNING"))

	log := logging.MustGetLogger("test")
	log.Debugf("hidden %d", 1)
	log.Warningf("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "WARNI")
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	err := InitLoggerWithWriter(&buf, "LOUD")
	assert.Error(t, err)
}
