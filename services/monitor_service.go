package services

import (
	"time"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/utils"
)

type MonitorService struct {
	cfg *config.AppConfig
}

func NewMonitorService(cfg *config.AppConfig) *MonitorService {
	return &MonitorService{cfg: cfg}
}

/**
 * Periodically probe the front-end and publish metrics
 * @param {*Reconciler} rec - Reconciler whose open port marks the front-end as expected up
 * @description
 * - Runs until the process exits; intended to be launched as a goroutine
 * - Front-end reachability feeds the agent_frontend_up gauge
 * - Pushes all registered metrics when a pushgateway is configured
 */
func (s *MonitorService) StartMonitoring(rec *Reconciler) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if rec.OpenPort() > 0 {
			up := utils.CheckPortConnectable(rec.OpenPort())
			RecordFrontendUp(up)
			if !up {
				logger.Errorf("Front-end port %d is not accepting connections", rec.OpenPort())
			}
		}
		if err := PushMetrics(s.cfg.Metrics.Pushgateway); err != nil {
			logger.Errorf("Metrics reporting error: %v", err)
		}
	}
}
