package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Travis-Prall/court-listener-mcp/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixedSnapshot() status.Snapshot {
	return status.Snapshot{
		Status:    status.Healthy,
		Service:   status.ServiceName,
		Version:   "1.4.0",
		Timestamp: "2026-01-02T03:04:05Z",
		Environment: status.Environment{
			Runtime:   "native",
			GoVersion: "go1.25.0",
		},
		System: status.System{
			ProcessUptime: "00:01:05",
			UptimeSeconds: 65,
			MemoryMB:      12.5,
			CPUPercent:    status.Sentinel,
		},
		Server: status.Server{
			ToolsAvailable: []string{"search", "get", "citation"},
			Transport:      "stdio",
			APIBase:        "https://www.courtlistener.com/api/rest/v4/",
			Host:           "127.0.0.1",
			Port:           8000,
		},
	}
}

func TestWriteSnapshot(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSnapshot(&buf, fixedSnapshot(), "json"))

		var decoded status.Snapshot
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, fixedSnapshot(), decoded)
		assert.Contains(t, buf.String(), `"cpu_percent": -1`)
	})

	t.Run("default is json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSnapshot(&buf, fixedSnapshot(), ""))
		assert.True(t, json.Valid(buf.Bytes()))
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSnapshot(&buf, fixedSnapshot(), "YAML"))

		var decoded status.Snapshot
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, fixedSnapshot(), decoded)
		assert.Contains(t, buf.String(), "tools_available:")
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeSnapshot(&buf, fixedSnapshot(), "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})
}

func TestStatusCommand(t *testing.T) {
	isolateEnv(t)
	t.Cleanup(func() {
		statusFlags = settingsFlags{}
		statusOutput = "json"
	})

	out, err := executeRoot(t, "status", "--env-file", "-", "--transport", "sse")
	require.NoError(t, err)

	var snapshot status.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
	assert.Equal(t, status.Healthy, snapshot.Status)
	assert.Equal(t, status.ServiceName, snapshot.Service)
	assert.Equal(t, "sse", snapshot.Server.Transport)
	assert.Equal(t, []string{"search", "get", "citation"}, snapshot.Server.ToolsAvailable)
}
