package collector

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func fakeCollector(pids []int32, gone map[int32]bool) *SystemCollector {
	return &SystemCollector{
		cfg: DefaultConfig().WithPageSize(3),
		pids: func(context.Context) ([]int32, error) {
			out := make([]int32, len(pids))
			copy(out, pids)
			return out, nil
		},
		inspect: func(_ context.Context, pid int32) (ProcessRow, error) {
			if gone[pid] {
				return ProcessRow{}, errors.New("process exited")
			}
			return ProcessRow{PID: pid, Name: "proc"}, nil
		},
	}
}

func rowPIDs(rows []ProcessRow) []int32 {
	out := make([]int32, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.PID)
	}
	return out
}

func equalPIDs(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRowsPaging(t *testing.T) {
	c := fakeCollector([]int32{40, 1, 7, 22, 9}, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int32
	}{
		{"first page uses page size", 0, 0, []int32{1, 7, 9}},
		{"second page", 3, 3, []int32{22, 40}},
		{"explicit limit", 1, 2, []int32{7, 9}},
		{"past the end", 10, 3, []int32{}},
		{"negative offset", -4, 1, []int32{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := c.Rows(ctx, tt.offset, tt.limit)
			if err != nil {
				t.Fatalf("Rows() error = %v", err)
			}
			if got := rowPIDs(rows); !equalPIDs(got, tt.want) {
				t.Errorf("Expected pids %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRowsSkipsExitedProcesses(t *testing.T) {
	c := fakeCollector([]int32{1, 2, 3}, map[int32]bool{2: true})

	rows, err := c.Rows(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if got := rowPIDs(rows); !equalPIDs(got, []int32{1, 3}) {
		t.Errorf("Expected pids [1 3], got %v", got)
	}
}

func TestRowsPidListFailure(t *testing.T) {
	c := fakeCollector(nil, nil)
	c.pids = func(context.Context) ([]int32, error) {
		return nil, errors.New("no procfs")
	}

	if _, err := c.Rows(context.Background(), 0, 3); err == nil {
		t.Error("Expected an error when pids cannot be listed")
	}
}

func TestNewSystemCollectorValidates(t *testing.T) {
	if _, err := NewSystemCollector(Config{}); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
}

func TestSystemCollectorLive(t *testing.T) {
	c, err := NewSystemCollector(DefaultConfig().WithPageSize(5))
	if err != nil {
		t.Fatalf("NewSystemCollector failed: %v", err)
	}

	rows, err := c.Rows(context.Background(), 0, 0)
	if err != nil {
		t.Skipf("process listing unavailable: %v", err)
	}
	if len(rows) > 5 {
		t.Errorf("Expected at most 5 rows, got %d", len(rows))
	}

	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		t.Logf("rows: %+v", rows)
		return
	}
	t.Logf("rows:\n%s", payload)
}
