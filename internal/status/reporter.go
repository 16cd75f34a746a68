package status

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"
)

const (
	// ServiceName is reported in every snapshot.
	ServiceName = "CourtListener MCP Server"
	// Healthy is the only status value; a process that can answer is healthy.
	Healthy = "healthy"

	// DefaultDeadline bounds the time spent sampling process metrics.
	DefaultDeadline = 2 * time.Second
	// DefaultCPUInterval is the CPU measurement window.
	DefaultCPUInterval = 100 * time.Millisecond

	unknownVersion = "unknown"
)

var (
	dockerEnvFile = "/.dockerenv"
	initCgroup    = "/proc/1/cgroup"
)

// ServerInfo is the static part of a snapshot.
type ServerInfo struct {
	Transport string
	APIBase   string
	Host      string
	Port      int
	// Namespaces lists the mounted tool groups; called on every snapshot.
	Namespaces func() []string
}

// Reporter builds status snapshots. It reads only local process state and
// never calls the remote API.
type Reporter struct {
	info        ServerInfo
	version     string
	sampler     Sampler
	deadline    time.Duration
	cpuInterval time.Duration
	dockerPaths [2]string
	now         func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSampler replaces the procfs sampler.
func WithSampler(s Sampler) Option {
	return func(r *Reporter) {
		r.sampler = s
	}
}

// WithDeadline bounds metric sampling.
func WithDeadline(d time.Duration) Option {
	return func(r *Reporter) {
		r.deadline = d
	}
}

// WithCPUInterval sets the CPU measurement window.
func WithCPUInterval(d time.Duration) Option {
	return func(r *Reporter) {
		r.cpuInterval = d
	}
}

// WithDockerMarkers overrides the files used for container detection.
func WithDockerMarkers(dockerEnv, cgroup string) Option {
	return func(r *Reporter) {
		r.dockerPaths = [2]string{dockerEnv, cgroup}
	}
}

// WithClock overrides the time source of the snapshot timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// NewReporter creates a Reporter. version is the build version, possibly
// empty; see ResolveVersion.
func NewReporter(info ServerInfo, version string, opts ...Option) *Reporter {
	r := &Reporter{
		info:        info,
		version:     ResolveVersion(version),
		sampler:     NewProcSampler(),
		deadline:    DefaultDeadline,
		cpuInterval: DefaultCPUInterval,
		dockerPaths: [2]string{dockerEnvFile, initCgroup},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status returns a snapshot of the process. It does not fail: metrics that
// cannot be read within the deadline are reported as Sentinel.
func (r *Reporter) Status() Snapshot {
	logging.Info("Status", "Status check requested")

	docker := r.isDocker()
	runtimeName := "native"
	if docker {
		runtimeName = "docker"
	}

	var namespaces []string
	if r.info.Namespaces != nil {
		namespaces = safeNamespaces(r.info.Namespaces)
	}

	return Snapshot{
		Status:    Healthy,
		Service:   ServiceName,
		Version:   r.version,
		Timestamp: r.now().UTC().Format(time.RFC3339),
		Environment: Environment{
			Runtime:   runtimeName,
			Docker:    docker,
			GoVersion: runtime.Version(),
		},
		System: r.sample(),
		Server: Server{
			ToolsAvailable: namespaces,
			Transport:      r.info.Transport,
			APIBase:        r.info.APIBase,
			Host:           r.info.Host,
			Port:           r.info.Port,
		},
	}
}

// sample reads all metrics on a separate goroutine so that a stuck or
// panicking sampler cannot hold up the snapshot.
func (r *Reporter) sample() System {
	result := make(chan System, 1)
	go func() {
		sys := System{UptimeSeconds: Sentinel, MemoryMB: Sentinel, CPUPercent: Sentinel}

		if uptime, ok := try("uptime", r.sampler.Uptime); ok {
			sys.UptimeSeconds = round1(uptime.Seconds())
			sys.ProcessUptime = FormatUptime(uptime)
		}
		if mem, ok := try("memory", r.sampler.MemoryBytes); ok {
			sys.MemoryMB = round1(float64(mem) / 1024 / 1024)
		}
		if cpu, ok := try("cpu", func() (float64, error) { return r.sampler.CPUPercent(r.cpuInterval) }); ok {
			sys.CPUPercent = round1(cpu)
		}
		result <- sys
	}()

	timer := time.NewTimer(r.deadline)
	defer timer.Stop()

	var sys System
	select {
	case sys = <-result:
	case <-timer.C:
		logging.Warn("Status", "Metric sampling exceeded %s, reporting sentinels", r.deadline)
		sys = System{UptimeSeconds: Sentinel, MemoryMB: Sentinel, CPUPercent: Sentinel}
	}
	if sys.ProcessUptime == "" {
		sys.ProcessUptime = UnknownUptime
	}
	return sys
}

// try calls fn, turning errors and panics into ok == false.
func try[T any](metric string, fn func() (T, error)) (value T, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn("Status", "Sampling %s panicked: %v", metric, rec)
			ok = false
		}
	}()
	v, err := fn()
	if err != nil {
		logging.Debug("Status", "Sampling %s failed: %v", metric, err)
		return value, false
	}
	return v, true
}

func safeNamespaces(fn func() []string) (out []string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
		}
	}()
	return fn()
}

func (r *Reporter) isDocker() bool {
	if _, err := os.Stat(r.dockerPaths[0]); err == nil {
		return true
	}
	f, err := os.Open(r.dockerPaths[1])
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "docker") {
			return true
		}
	}
	return false
}

// FormatUptime renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatUptime(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ResolveVersion returns v when set, then the main module version from the
// build info, then "unknown".
func ResolveVersion(v string) string {
	if v = strings.TrimSpace(v); v != "" && v != "dev" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			return mv
		}
	}
	return unknownVersion
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
