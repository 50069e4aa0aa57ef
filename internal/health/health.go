package health

import (
	"context"
	"database/sql"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db      *sql.DB
	dataDir string
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// DetailedStatus adds host resource figures for the data directory's volume.
type DetailedStatus struct {
	HealthStatus
	DiskUsedPercent   float64 `json:"disk_used_percent"`
	DiskFreeBytes     uint64  `json:"disk_free_bytes"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
}

func NewHealthChecker(db *sql.DB, dataDir string) *HealthChecker {
	return &HealthChecker{db: db, dataDir: dataDir}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

func (h *HealthChecker) CheckDetailed() DetailedStatus {
	detailed := DetailedStatus{HealthStatus: h.CheckBasic()}

	if usage, err := disk.Usage(h.dataDir); err == nil {
		detailed.DiskUsedPercent = usage.UsedPercent
		detailed.DiskFreeBytes = usage.Free
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		detailed.MemoryUsedPercent = vm.UsedPercent
	}

	return detailed
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
