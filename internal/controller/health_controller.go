package controller

import (
	"loki-mcp/internal/health"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	status *health.Status
}

func NewHealthController(status *health.Status) *HealthController {
	return &HealthController{status: status}
}

func RegisterHealthRoutes(router *gin.Engine, controller *HealthController) {
	router.GET("/healthz", controller.Liveness)
	router.GET("/readyz", controller.Readiness)
}

// Liveness godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  model.Response
// @Router       /healthz [get]
func (c *HealthController) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "loki": c.status.Snapshot()})
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Reports whether the last scheduled Loki readiness check succeeded.
// @Tags         health
// @Produce      json
// @Success      200  {object}  health.Snapshot
// @Failure      503  {object}  health.Snapshot
// @Router       /readyz [get]
func (c *HealthController) Readiness(ctx *gin.Context) {
	snap := c.status.Snapshot()
	if !snap.Ready {
		ctx.JSON(http.StatusServiceUnavailable, snap)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}
