package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brightclass/brightclass-backend/internal/response"
)

const metricsInterval = 10 * time.Second

// SystemHandler exposes liveness and a teacher-dashboard metrics stream.
type SystemHandler struct {
	pool      *pgxpool.Pool
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger

	// CPU delta state between ticks.
	prevIdle  uint64
	prevTotal uint64
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	h := &SystemHandler{
		pool:      pool,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
	h.prevIdle, h.prevTotal, _ = readCPUStat()
	return h
}

// Health godoc
// GET /api/v1/health
// Reports process liveness plus PostgreSQL and Redis reachability.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	dbOK, redisOK := true, true

	if err := h.pool.Ping(ctx); err != nil {
		dbOK = false
		status = http.StatusServiceUnavailable
	}
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		redisOK = false
		status = http.StatusServiceUnavailable
	}

	response.Success(c, status, gin.H{
		"status":   map[bool]string{true: "ok", false: "degraded"}[dbOK && redisOK],
		"postgres": dbOK,
		"redis":    redisOK,
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
	})
}

type systemMetrics struct {
	Timestamp int64  `json:"timestamp"`
	Uptime    string `json:"uptime"`

	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"mem_percent"`
	LoadAvg1   float64 `json:"load_avg_1"`

	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	NumGC      uint32 `json:"num_gc"`
	GoVersion  string `json:"go_version"`

	DBConnsTotal int32 `json:"db_conns_total"`
	DBConnsIdle  int32 `json:"db_conns_idle"`

	RedisPingMs int64 `json:"redis_ping_ms"`
}

// MetricsSSE godoc
// GET /api/v1/teacher/system/metrics
// Streams host and runtime metrics to the teacher dashboard via SSE.
func (h *SystemHandler) MetricsSSE(c *gin.Context) {
	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	h.writeMetrics(c)
	for {
		select {
		case <-reqCtx.Done():
			return
		case <-ticker.C:
			h.writeMetrics(c)
		}
	}
}

func (h *SystemHandler) writeMetrics(c *gin.Context) {
	data, err := json.Marshal(h.collect(c))
	if err != nil {
		return
	}
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

func (h *SystemHandler) collect(c *gin.Context) systemMetrics {
	m := systemMetrics{
		Timestamp: time.Now().Unix(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
	}

	if idle, total, err := readCPUStat(); err == nil && total > h.prevTotal {
		idleDelta := float64(idle - h.prevIdle)
		totalDelta := float64(total - h.prevTotal)
		m.CPUPercent = (1 - idleDelta/totalDelta) * 100
		h.prevIdle, h.prevTotal = idle, total
	}

	if total, avail, err := readMemInfo(); err == nil && total > 0 {
		m.MemPercent = float64(total-avail) / float64(total) * 100
	}
	m.LoadAvg1, _ = readLoadAvg1()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.Goroutines = runtime.NumGoroutine()
	m.HeapAlloc = ms.HeapAlloc
	m.NumGC = ms.NumGC

	stat := h.pool.Stat()
	m.DBConnsTotal = stat.TotalConns()
	m.DBConnsIdle = stat.IdleConns()

	start := time.Now()
	if err := h.rdb.Ping(c.Request.Context()).Err(); err == nil {
		m.RedisPingMs = time.Since(start).Milliseconds()
	} else {
		m.RedisPingMs = -1
	}

	return m
}

// readCPUStat parses the aggregate line of /proc/stat, returning idle
// and total jiffies.
func readCPUStat() (idle, total uint64, err error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(strings.SplitN(string(data), "\n", 2)[0])
	for i := 1; i < len(fields); i++ {
		v, _ := strconv.ParseUint(fields[i], 10, 64)
		total += v
		if i == 4 {
			idle = v
		}
	}
	return idle, total, nil
}

// readMemInfo parses /proc/meminfo for MemTotal and MemAvailable (bytes).
func readMemInfo() (total, available uint64, err error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0, 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, _ := strconv.ParseUint(fields[1], 10, 64)
		switch fields[0] {
		case "MemTotal:":
			total = v * 1024
		case "MemAvailable:":
			available = v * 1024
		}
		if total > 0 && available > 0 {
			break
		}
	}
	return total, available, nil
}

// readLoadAvg1 returns the 1-minute load average from /proc/loadavg.
func readLoadAvg1() (float64, error) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(fields[0], 64)
}
