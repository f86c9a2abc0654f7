// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/warehouse-ms/internal/pkg/config"
)

// DatabaseChecker is the part of db.Database the health checks use
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]any
}

// QueueInspector is the part of asynq.Inspector the health checks use
type QueueInspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	Servers() ([]*asynq.ServerInfo, error)
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// depCheck checks one dependency. details runs only for /health and only
// after ping succeeded.
type depCheck struct {
	name    string
	ping    func(ctx context.Context) error
	details func(ctx context.Context) map[string]any
}

// HealthHandler serves /health and /ready over the database, the cache
// and, when uploads are queued, the asynq queues.
type HealthHandler struct {
	responder
	checks    []depCheck
	config    *config.Config
	startTime time.Time
}

// NewHealthHandler creates a new health handler. inspector may be nil
// when background ingest is disabled.
func NewHealthHandler(
	database DatabaseChecker,
	redisClient *redis.Client,
	inspector QueueInspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	checks := []depCheck{
		{name: "database", ping: database.Ping, details: database.Health},
		{
			name: "redis",
			ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
			details: func(context.Context) map[string]any {
				stats := redisClient.PoolStats()
				return map[string]any{
					"total_conns": stats.TotalConns,
					"idle_conns":  stats.IdleConns,
					"stale_conns": stats.StaleConns,
				}
			},
		},
	}
	if inspector != nil {
		checks = append(checks, depCheck{
			name: "asynq",
			ping: func(context.Context) error {
				_, err := inspector.Queues()
				return err
			},
			details: func(context.Context) map[string]any { return queueDetails(inspector) },
		})
	}

	return &HealthHandler{
		responder: responder{logger: logger.With(slog.String("handler", "health"))},
		checks:    checks,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Register mounts GET /health and GET /ready. Both stay outside auth.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Readiness)
}

// HealthStatus is the /health response body
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	Runtime     RuntimeInfo            `json:"runtime"`
}

// ServiceInfo is the state of one dependency
type ServiceInfo struct {
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	ResponseTime string         `json:"response_time,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// RuntimeInfo is the process snapshot reported with /health
type RuntimeInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

// Health reports every dependency with pool and queue details. Any failed
// dependency turns the service degraded and the response into a 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	body := HealthStatus{
		Status:      statusHealthy,
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Services:    make(map[string]ServiceInfo, len(h.checks)),
		Runtime:     runtimeInfo(),
	}

	for _, p := range h.checks {
		info := h.check(ctx, p)
		if info.Status != statusHealthy {
			body.Status = statusDegraded
		}
		body.Services[p.name] = info
	}

	code := http.StatusOK
	if body.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, code, body)
}

// Readiness only pings; it is what the orchestrator polls
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	details := make(map[string]string, len(h.checks))
	for _, p := range h.checks {
		if err := p.ping(ctx); err != nil {
			ready = false
			details[p.name] = "not ready"
			continue
		}
		details[p.name] = "ready"
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, code, map[string]any{"ready": ready, "details": details})
}

func (h *HealthHandler) check(ctx context.Context, p depCheck) ServiceInfo {
	start := time.Now()
	if err := p.ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed",
			slog.String("dependency", p.name),
			slog.String("error", err.Error()))
		return ServiceInfo{Status: statusUnhealthy, Message: err.Error()}
	}

	info := ServiceInfo{Status: statusHealthy}
	if p.details != nil {
		info.Details = p.details(ctx)
	}
	info.ResponseTime = time.Since(start).String()
	return info
}

// queueDetails lists the backlog of every queue so a stuck ingest shows
// up as growing pending or retry counts.
func queueDetails(inspector QueueInspector) map[string]any {
	details := make(map[string]any)

	queues, err := inspector.Queues()
	if err != nil {
		return details
	}
	backlog := make(map[string]any, len(queues))
	for _, q := range queues {
		qi, err := inspector.GetQueueInfo(q)
		if err != nil {
			continue
		}
		backlog[q] = map[string]int{
			"pending":   qi.Pending,
			"active":    qi.Active,
			"scheduled": qi.Scheduled,
			"retry":     qi.Retry,
			"archived":  qi.Archived,
		}
	}
	details["queues"] = backlog

	if servers, err := inspector.Servers(); err == nil {
		details["servers"] = len(servers)
	}
	return details
}

func runtimeInfo() RuntimeInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		MemoryAllocMB: m.Alloc / 1024 / 1024,
		NumGC:         m.NumGC,
	}
}
