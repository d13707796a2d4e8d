package controllers

import (
	"fmt"

	"staticreports-agent/internal/models"
	"staticreports-agent/services"

	"github.com/gin-gonic/gin"
)

type HookController struct {
	reconciler *services.Reconciler
}

/**
 * Create new hook controller instance
 * @param {*services.Reconciler} reconciler - Lifecycle reconciler handling the events
 * @returns {*HookController} New hook controller instance
 */
func NewHookController(reconciler *services.Reconciler) *HookController {
	return &HookController{
		reconciler: reconciler,
	}
}

/**
 * Register hook API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @example
 * router := gin.Default()
 * controller := NewHookController(reconciler)
 * controller.RegisterRoutes(router)
 */
func (h *HookController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/staticreports/api/v1")
	api.POST("/hooks/:name", h.DispatchHook)
}

// DispatchHook runs one lifecycle event through the reconciler
//
//	@Summary		Dispatch lifecycle event
//	@Description	Run a lifecycle event (install/upgrade/start/config-changed/refresh) and return the resulting status
//	@Tags			Hooks
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string					true	"Event name"
//	@Success		200		{object}	models.UnitStatus		"Resulting unit status"
//	@Failure		400		{object}	models.ErrorResponse	"Unknown event error response"
//	@Router			/staticreports/api/v1/hooks/{name} [post]
func (h *HookController) DispatchHook(c *gin.Context) {
	name := c.Param("name")
	event, ok := models.ValidEvent(name)
	if !ok {
		c.JSON(400, &models.ErrorResponse{
			Code:  "hook.unknown",
			Error: fmt.Sprintf("unknown lifecycle event %q", name),
		})
		return
	}

	status := h.reconciler.HandleEvent(c.Request.Context(), event)
	c.JSON(200, status)
}
