package services

import (
	"context"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/logger"
)

/**
 * Service manager drives the front-end web server and the scheduled report jobs
 * @description
 * - Start restarts the front-end synchronously, then issues non-blocking
 *   start requests for every report job
 * - RefreshAll runs every report job to completion, one after another
 */
type ServiceManager struct {
	init     InitSystem
	frontend string
	services []string
}

func NewServiceManager(init InitSystem) *ServiceManager {
	return &ServiceManager{
		init:     init,
		frontend: config.FrontendUnit,
		services: config.ReportServices,
	}
}

/**
 * Start all services without waiting for the report jobs
 * @returns {error} First failure aborts the remaining starts
 */
func (sm *ServiceManager) Start(ctx context.Context) error {
	if err := sm.init.Restart(ctx, sm.frontend); err != nil {
		return err
	}
	logger.Debugf("%s service restarted", sm.frontend)
	for _, service := range sm.services {
		if _, err := sm.init.Start(ctx, service+".service", false); err != nil {
			return err
		}
		logger.Debugf("%s service started", service)
	}
	return nil
}

/**
 * Refresh all reports, waiting for each job to complete
 * @returns {error} First failure aborts the remaining jobs, its output is logged
 */
func (sm *ServiceManager) RefreshAll(ctx context.Context) error {
	for _, service := range sm.services {
		out, err := sm.init.Start(ctx, service+".service", true)
		if err != nil {
			logger.Debugf("Refreshing %s failed: %s", service, out)
			return err
		}
	}
	return nil
}

// ConfigureURL URL由外部决定，这里暂时只记录
func (sm *ServiceManager) ConfigureURL(url string) {
	logger.Debugf("ConfigureURL: the url in use is %s", url)
}
