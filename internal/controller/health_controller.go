package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary 健康检查
// @Description 检查服务及其依赖（数据库、Redis）状态
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "up"
	dbStatus := "ok"
	redisStatus := "ok"

	if sqlDB, err := c.DB.DB(); err != nil {
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
		overall = "down"
	} else if err := sqlDB.PingContext(checkCtx); err != nil {
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
		overall = "down"
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(checkCtx).Err(); err != nil {
			redisStatus = err.Error()
			status = http.StatusServiceUnavailable
			overall = "down"
		}
	} else {
		redisStatus = "disabled"
	}

	ctx.JSON(status, gin.H{
		"status": overall,
		"time":   time.Now().Format(time.RFC3339),
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
