package status

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSampler struct {
	uptime    time.Duration
	memory    uint64
	cpu       float64
	err       error
	panicking bool
	block     time.Duration
}

func (f fakeSampler) Uptime() (time.Duration, error) {
	if f.panicking {
		panic("sampler exploded")
	}
	return f.uptime, f.err
}

func (f fakeSampler) MemoryBytes() (uint64, error) {
	if f.block > 0 {
		time.Sleep(f.block)
	}
	return f.memory, f.err
}

func (f fakeSampler) CPUPercent(time.Duration) (float64, error) {
	return f.cpu, f.err
}

func testInfo() ServerInfo {
	return ServerInfo{
		Transport:  "streamable-http",
		APIBase:    "https://www.courtlistener.com/api/rest/v4/",
		Host:       "127.0.0.1",
		Port:       8000,
		Namespaces: func() []string { return []string{"search", "get", "citation"} },
	}
}

// noDocker points container detection at files that do not exist.
func noDocker(t *testing.T) Option {
	dir := t.TempDir()
	return WithDockerMarkers(filepath.Join(dir, ".dockerenv"), filepath.Join(dir, "cgroup"))
}

func TestStatus_HealthySnapshot(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	r := NewReporter(testInfo(), "1.2.3",
		WithSampler(fakeSampler{uptime: 3725 * time.Second, memory: 52428800, cpu: 12.345}),
		WithClock(clock),
		noDocker(t),
	)

	snap := r.Status()

	assert.Equal(t, Healthy, snap.Status)
	assert.Equal(t, ServiceName, snap.Service)
	assert.Equal(t, "1.2.3", snap.Version)
	assert.Equal(t, "2025-03-01T11:00:00Z", snap.Timestamp)

	assert.Equal(t, "native", snap.Environment.Runtime)
	assert.False(t, snap.Environment.Docker)
	assert.Equal(t, runtime.Version(), snap.Environment.GoVersion)

	assert.Equal(t, "01:02:05", snap.System.ProcessUptime)
	assert.Equal(t, 3725.0, snap.System.UptimeSeconds)
	assert.Equal(t, 50.0, snap.System.MemoryMB)
	assert.Equal(t, 12.3, snap.System.CPUPercent)

	assert.Equal(t, []string{"search", "get", "citation"}, snap.Server.ToolsAvailable)
	assert.Equal(t, "streamable-http", snap.Server.Transport)
	assert.Equal(t, 8000, snap.Server.Port)
}

func TestStatus_SamplerFailureUsesSentinels(t *testing.T) {
	tests := []struct {
		name    string
		sampler Sampler
	}{
		{"errors", fakeSampler{err: errors.New("permission denied")}},
		{"panics", fakeSampler{panicking: true, err: errors.New("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReporter(testInfo(), "", WithSampler(tt.sampler), noDocker(t))

			var snap Snapshot
			require.NotPanics(t, func() { snap = r.Status() })

			assert.Equal(t, Healthy, snap.Status)
			assert.Equal(t, UnknownUptime, snap.System.ProcessUptime)
			assert.EqualValues(t, Sentinel, snap.System.UptimeSeconds)
			assert.EqualValues(t, Sentinel, snap.System.MemoryMB)
			assert.EqualValues(t, Sentinel, snap.System.CPUPercent)
		})
	}
}

func TestStatus_SlowSamplerIsBounded(t *testing.T) {
	r := NewReporter(testInfo(), "",
		WithSampler(fakeSampler{uptime: time.Second, block: time.Second}),
		WithDeadline(50*time.Millisecond),
		noDocker(t),
	)

	start := time.Now()
	snap := r.Status()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.EqualValues(t, Sentinel, snap.System.MemoryMB)
	assert.Equal(t, UnknownUptime, snap.System.ProcessUptime)
}

func TestStatus_DockerDetection(t *testing.T) {
	dir := t.TempDir()
	cgroup := filepath.Join(dir, "cgroup")
	require.NoError(t, os.WriteFile(cgroup, []byte("12:pids:/\n1:name=systemd:/docker/abc123\n"), 0644))

	r := NewReporter(testInfo(), "", WithSampler(fakeSampler{}),
		WithDockerMarkers(filepath.Join(dir, ".dockerenv"), cgroup))
	snap := r.Status()
	assert.True(t, snap.Environment.Docker)
	assert.Equal(t, "docker", snap.Environment.Runtime)

	marker := filepath.Join(dir, ".dockerenv")
	require.NoError(t, os.WriteFile(marker, nil, 0644))
	r = NewReporter(testInfo(), "", WithSampler(fakeSampler{}),
		WithDockerMarkers(marker, filepath.Join(dir, "missing")))
	assert.True(t, r.Status().Environment.Docker)
}

func TestStatus_SnapshotJSONShape(t *testing.T) {
	r := NewReporter(testInfo(), "1.0.0", WithSampler(fakeSampler{uptime: time.Minute}), noDocker(t))

	data, err := json.Marshal(r.Status())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"status", "service", "version", "timestamp", "environment", "system", "server"} {
		assert.Contains(t, decoded, key)
	}

	m := r.Status().Map()
	assert.Equal(t, "healthy", m["status"])
	assert.Equal(t, []string{"search", "get", "citation"}, m["server"].(map[string]any)["tools_available"])
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 61*time.Second, "01:01:01"},
		{30 * time.Hour, "30:00:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.in))
	}
}

func TestResolveVersion(t *testing.T) {
	assert.Equal(t, "v1.4.0", ResolveVersion("v1.4.0"))
	// Test binaries carry no module version.
	assert.Equal(t, unknownVersion, ResolveVersion(""))
	assert.Equal(t, unknownVersion, ResolveVersion("dev"))
}

func TestProcSampler(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("procfs not available")
	}
	s := NewProcSampler()

	uptime, err := s.Uptime()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, uptime, time.Duration(0))

	mem, err := s.MemoryBytes()
	require.NoError(t, err)
	assert.Greater(t, mem, uint64(0))

	cpu, err := s.CPUPercent(10 * time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cpu, 0.0)
}
