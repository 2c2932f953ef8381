package health

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var startTime = time.Now()

// Handlers holds the dependencies the liveness endpoint pings.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

type depStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// JSON handles GET /health/json: overall status plus a per-dependency ping.
// Redis is optional, so a missing client reports disconnected without
// degrading the overall status.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := map[string]depStatus{
		"database": h.pingDB(c),
		"redis":    h.pingRedis(c),
	}

	status := "ok"
	if deps["database"].Status != "connected" {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"service": "socialgrdn-api",
		"status":  status,
		"runtime": fiber.Map{
			"uptimeSeconds": int64(time.Since(startTime).Seconds()),
			"goVersion":     runtime.Version(),
		},
		"dependencies": deps,
	})
}

func (h *Handlers) pingDB(c *fiber.Ctx) depStatus {
	if h.DB == nil {
		return depStatus{Status: "disconnected"}
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return depStatus{Status: "error"}
	}
	start := time.Now()
	if err := sqlDB.PingContext(c.Context()); err != nil {
		return depStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return depStatus{Status: "connected", PingMs: &ms}
}

func (h *Handlers) pingRedis(c *fiber.Ctx) depStatus {
	if h.Rdb == nil {
		return depStatus{Status: "disconnected"}
	}
	start := time.Now()
	if err := h.Rdb.Ping(c.Context()).Err(); err != nil {
		return depStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return depStatus{Status: "connected", PingMs: &ms}
}
