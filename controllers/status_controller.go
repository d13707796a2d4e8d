package controllers

import (
	"staticreports-agent/internal/config"
	"staticreports-agent/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type StatusController struct {
	reconciler *services.Reconciler
}

func NewStatusController(reconciler *services.Reconciler) *StatusController {
	return &StatusController{
		reconciler: reconciler,
	}
}

/**
 * Register status and operational routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for:
 *   - Unit status query
 *   - Config reload
 *   - Health check and prometheus metrics
 */
func (s *StatusController) RegisterRoutes(r *gin.Engine) {
	r.GET("/staticreports/api/v1/status", s.GetStatus)
	r.POST("/staticreports/api/v1/reload", s.ReloadConfig)
	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetStatus returns the externally visible unit status
//
//	@Summary		Get unit status
//	@Description	Get the tri-state unit status set by the last lifecycle event
//	@Tags			Status
//	@Produce		json
//	@Success		200	{object}	models.UnitStatus	"Current unit status"
//	@Router			/staticreports/api/v1/status [get]
func (s *StatusController) GetStatus(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":   s.reconciler.Status(),
		"openPort": s.reconciler.OpenPort(),
	})
}

// @Summary 重新加载配置
// @Description 重新读取应用配置文件
// @Tags Config
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /staticreports/api/v1/reload [post]
func (s *StatusController) ReloadConfig(c *gin.Context) {
	if err := config.ReloadConfig(); err != nil {
		c.JSON(500, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(200, gin.H{
		"message": "config reloaded",
	})
}

// @Summary 健康检查
// @Tags Status
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func (s *StatusController) Healthz(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":        "ok",
		"totalRequests": services.GetTotalRequestCount(),
		"totalErrors":   services.GetTotalErrorCount(),
	})
}
