package monty

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestConfigureLoggingWritesJSONToGivenOutput(t *testing.T) {
	var buf bytes.Buffer
	entry := ConfigureLogging(LogConfig{Level: logrus.InfoLevel, Output: &buf})
	entry.Info("hello")

	require.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestConfigureLoggingDiscardsByDefault(t *testing.T) {
	entry := ConfigureLogging(LogConfig{Level: logrus.InfoLevel})
	require.NotPanics(t, func() { entry.Info("nobody sees this") })
}

func TestMaxOrFallsBackWhenUnset(t *testing.T) {
	require.Equal(t, 100, maxOr(0, 100))
	require.Equal(t, 50, maxOr(50, 100))
}
