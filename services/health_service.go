package services

import (
	"context"
	"promo_store_server/database"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart = time.Now()

type ServerHealthStatus struct {
	Uptime       float64   `json:"uptime"` // in seconds
	CurrentTime  time.Time `json:"currentTime"`
	ServiceAlive bool      `json:"serviceAlive"`
	Goroutines   int       `json:"goroutines"`
	RamStats     *RamStats `json:"ramStats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"totalMb"`
	UsedMB      uint64 `json:"usedMb"`
	FreeMB      uint64 `json:"freeMb"`
	UsedPercent uint64 `json:"usedPercent"`
}

type DatabaseHealthStatus struct {
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"lastChecked"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
}

// CacheHealthStatus is only reported when Redis is configured.
type CacheHealthStatus struct {
	Connected bool           `json:"connected"`
	Pool      map[string]any `json:"pool,omitempty"`
}

type HealthService struct {
	logger *gecho.Logger
	db     *database.DB
	cache  *CacheService
}

// NewHealthService accepts a nil cache when Redis is not in use.
func NewHealthService(logger *gecho.Logger, db *database.DB, cache *CacheService) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
		cache:  cache,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() ServerHealthStatus {
	return ServerHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		Goroutines:   runtime.NumGoroutine(),
		RamStats:     getRamStats(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (DatabaseHealthStatus, error) {
	start := time.Now()
	err := hs.db.Health(ctx)

	status := DatabaseHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}

	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}

	return status, err
}

// GetCacheHealthStatus returns nil when no cache is configured.
func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (*CacheHealthStatus, error) {
	if hs.cache == nil {
		return nil, nil
	}

	if err := hs.cache.Ping(ctx); err != nil {
		hs.logger.Error("Cache health check failed", gecho.Field("error", err))
		return &CacheHealthStatus{Connected: false}, err
	}

	return &CacheHealthStatus{Connected: true, Pool: hs.cache.GetConnectionStats()}, nil
}
