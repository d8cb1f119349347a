package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB  *gorm.DB
	Hub *service.EventHub
}

func NewHealthController(db *gorm.DB, hub *service.EventHub) *HealthController {
	return &HealthController{DB: db, Hub: hub}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service and database status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database":   "up",
			"ws_clients": c.Hub.RoomSize(service.RoomGeneral),
		},
	})
}

// Index godoc
// @Summary API index
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router / [get]
func (c *HealthController) Index(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"name":    "Academic Portal API",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
		"health":  "/api/health",
	})
}
