package status

// Sentinel replaces a metric that could not be sampled.
const Sentinel = -1

// UnknownUptime replaces the formatted uptime when it could not be sampled.
const UnknownUptime = "unknown"

// Snapshot is the health report returned by the status tool. It is built on
// every request and never stored.
type Snapshot struct {
	Status      string      `json:"status" yaml:"status"`
	Service     string      `json:"service" yaml:"service"`
	Version     string      `json:"version" yaml:"version"`
	Timestamp   string      `json:"timestamp" yaml:"timestamp"`
	Environment Environment `json:"environment" yaml:"environment"`
	System      System      `json:"system" yaml:"system"`
	Server      Server      `json:"server" yaml:"server"`
}

// Environment describes where the process runs.
type Environment struct {
	Runtime   string `json:"runtime" yaml:"runtime"` // docker or native
	Docker    bool   `json:"docker" yaml:"docker"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// System holds process metrics. Each is Sentinel when sampling failed.
type System struct {
	ProcessUptime string  `json:"process_uptime" yaml:"process_uptime"`
	UptimeSeconds float64 `json:"uptime_seconds" yaml:"uptime_seconds"`
	MemoryMB      float64 `json:"memory_mb" yaml:"memory_mb"`
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
}

// Server echoes the serving configuration.
type Server struct {
	ToolsAvailable []string `json:"tools_available" yaml:"tools_available"`
	Transport      string   `json:"transport" yaml:"transport"`
	APIBase        string   `json:"api_base" yaml:"api_base"`
	Host           string   `json:"host" yaml:"host"`
	Port           int      `json:"port" yaml:"port"`
}

// Map converts the snapshot into the generic payload shape used by tool
// results.
func (s Snapshot) Map() map[string]any {
	tools := s.Server.ToolsAvailable
	if tools == nil {
		tools = []string{}
	}
	return map[string]any{
		"status":    s.Status,
		"service":   s.Service,
		"version":   s.Version,
		"timestamp": s.Timestamp,
		"environment": map[string]any{
			"runtime":    s.Environment.Runtime,
			"docker":     s.Environment.Docker,
			"go_version": s.Environment.GoVersion,
		},
		"system": map[string]any{
			"process_uptime": s.System.ProcessUptime,
			"uptime_seconds": s.System.UptimeSeconds,
			"memory_mb":      s.System.MemoryMB,
			"cpu_percent":    s.System.CPUPercent,
		},
		"server": map[string]any{
			"tools_available": tools,
			"transport":       s.Server.Transport,
			"api_base":        s.Server.APIBase,
			"host":            s.Server.Host,
			"port":            s.Server.Port,
		},
	}
}
