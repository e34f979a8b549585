package services

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthReport struct {
	Status                string    `json:"status"`
	Database              string    `json:"database"`
	CheckedAt             time.Time `json:"checkedAt"`
	UptimeSeconds         int64     `json:"uptimeSeconds"`
	ProcessRSSBytes       int64     `json:"processRssBytes"`
	SystemMemoryUsedBytes int64     `json:"systemMemoryUsedBytes"`
	DiskUsedBytes         int64     `json:"diskUsedBytes"`
	CPULoad               float64   `json:"cpuLoad"`
}

func (r HealthReport) Healthy() bool {
	return r.Status == "ok"
}

type HealthService struct {
	db        Pinger
	diskPath  string
	timeout   time.Duration
	startedAt time.Time
}

func NewHealthService(db Pinger, diskPath string, timeout time.Duration) *HealthService {
	return &HealthService{db: db, diskPath: diskPath, timeout: timeout, startedAt: time.Now()}
}

// Check pings the database and samples host statistics concurrently. Statistic failures
// leave the corresponding field zero; only the database decides the status.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	report := HealthReport{
		Status:        "ok",
		Database:      "ok",
		CheckedAt:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}
	var g errgroup.Group
	g.Go(func() error {
		if s.db == nil {
			return nil
		}
		if err := s.db.PingContext(ctx); err != nil {
			report.Database = "unreachable"
			report.Status = "degraded"
		}
		return nil
	})
	g.Go(func() error {
		proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
		if err != nil {
			return nil
		}
		if info, err := proc.MemoryInfoWithContext(ctx); err == nil && info != nil {
			report.ProcessRSSBytes = int64(info.RSS)
		}
		return nil
	})
	g.Go(func() error {
		if stat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
			report.SystemMemoryUsedBytes = int64(stat.Total - stat.Available)
		}
		return nil
	})
	g.Go(func() error {
		if stat, err := disk.UsageWithContext(ctx, s.diskPath); err == nil {
			report.DiskUsedBytes = int64(stat.Used)
		}
		return nil
	})
	g.Go(func() error {
		if loads, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(loads) > 0 {
			report.CPULoad = loads[0] / 100.0
		}
		return nil
	})
	_ = g.Wait()
	return report
}
