package collector

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessRow is one line of the process list.
type ProcessRow struct {
	PID    int32   `json:"pid"`
	Name   string  `json:"name,omitempty"`
	CPU    float64 `json:"cpu_percent,omitempty"`
	Memory float32 `json:"memory_percent,omitempty"`
}

// RowProvider pages through process rows ordered by PID.
type RowProvider interface {
	Rows(ctx context.Context, offset, limit int) ([]ProcessRow, error)
}

// SystemCollector reads processes from the host through gopsutil.
type SystemCollector struct {
	cfg     Config
	pids    func(ctx context.Context) ([]int32, error)
	inspect func(ctx context.Context, pid int32) (ProcessRow, error)
}

// NewSystemCollector creates a collector for the local host.
func NewSystemCollector(cfg Config) (*SystemCollector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SystemCollector{
		cfg:     cfg,
		pids:    process.PidsWithContext,
		inspect: inspectProcess,
	}, nil
}

func (s *SystemCollector) PageSize() int { return s.cfg.PageSize }

// Rows returns up to limit processes starting at offset. A non-positive
// limit uses the configured page size. Processes that exit while being
// inspected are skipped.
func (s *SystemCollector) Rows(ctx context.Context, offset, limit int) ([]ProcessRow, error) {
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	pids, err := s.pids(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pids: %w", err)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	if offset >= len(pids) {
		return []ProcessRow{}, nil
	}
	end := offset + limit
	if end > len(pids) {
		end = len(pids)
	}

	rows := make([]ProcessRow, 0, end-offset)
	for _, pid := range pids[offset:end] {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		row, err := s.inspect(ctx, pid)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func inspectProcess(ctx context.Context, pid int32) (ProcessRow, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ProcessRow{}, err
	}
	name, _ := p.NameWithContext(ctx)
	cpuPct, _ := p.CPUPercentWithContext(ctx)
	memPct, _ := p.MemoryPercentWithContext(ctx)

	return ProcessRow{
		PID:    pid,
		Name:   name,
		CPU:    cpuPct,
		Memory: memPct,
	}, nil
}
