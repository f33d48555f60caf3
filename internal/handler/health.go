package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports service readiness. Postgres is a hard dependency — without
// it neither the form lookups nor the registration work, so a failed ping is
// a 503. Redis only backs the lookup cache; when it is down or absent the
// service keeps working against the database, so it reports degraded instead
// of failing the check.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "error"
		}

		estadoCache := "ok"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			estadoCache = "degraded"
		}

		status := http.StatusOK
		if estadoDB != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    estadoDB,
			"cache": estadoCache,
		})
	}
}
