package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports DB and Redis connectivity plus the order-mail queue backlog.
// A growing dead-letter count means confirmations are silently failing, so it
// is surfaced here rather than buried in worker logs.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if redisStatus == "connected" {
			if depth, err := rdb.LLen(ctx, worker.QueueOrderMail).Result(); err == nil {
				body["mail_queue"] = depth
			}
			if dead, err := worker.DLQLength(ctx, rdb, worker.QueueOrderMail); err == nil {
				body["mail_dlq"] = dead
			}
		}

		c.JSON(status, body)
	}
}
