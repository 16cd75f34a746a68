package status

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/procfs"
)

// Sampler reads metrics of the current process.
type Sampler interface {
	Uptime() (time.Duration, error)
	MemoryBytes() (uint64, error)
	// CPUPercent measures CPU usage over interval, 100 meaning one full core.
	CPUPercent(interval time.Duration) (float64, error)
}

// ProcSampler reads /proc through procfs.
type ProcSampler struct {
	// MountPoint defaults to procfs.DefaultMountPoint.
	MountPoint string
	// PID defaults to the current process.
	PID int
}

// NewProcSampler creates a sampler for the current process.
func NewProcSampler() *ProcSampler {
	return &ProcSampler{}
}

func (s *ProcSampler) stat() (procfs.ProcStat, error) {
	mount := s.MountPoint
	if mount == "" {
		mount = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return procfs.ProcStat{}, fmt.Errorf("open procfs: %w", err)
	}
	pid := s.PID
	if pid == 0 {
		pid = os.Getpid()
	}
	proc, err := fs.Proc(pid)
	if err != nil {
		return procfs.ProcStat{}, fmt.Errorf("open process %d: %w", pid, err)
	}
	return proc.Stat()
}

// Uptime implements Sampler.
func (s *ProcSampler) Uptime() (time.Duration, error) {
	st, err := s.stat()
	if err != nil {
		return 0, err
	}
	started, err := st.StartTime()
	if err != nil {
		return 0, fmt.Errorf("read start time: %w", err)
	}
	start := time.Unix(0, int64(started*float64(time.Second)))
	return time.Since(start), nil
}

// MemoryBytes implements Sampler.
func (s *ProcSampler) MemoryBytes() (uint64, error) {
	st, err := s.stat()
	if err != nil {
		return 0, err
	}
	return uint64(st.ResidentMemory()), nil
}

// CPUPercent implements Sampler.
func (s *ProcSampler) CPUPercent(interval time.Duration) (float64, error) {
	before, err := s.stat()
	if err != nil {
		return 0, err
	}
	start := time.Now()
	time.Sleep(interval)
	after, err := s.stat()
	if err != nil {
		return 0, err
	}
	elapsed := time.Since(start).Seconds()
	if elapsed <= 0 {
		return 0, nil
	}
	return (after.CPUTime() - before.CPUTime()) / elapsed * 100, nil
}
