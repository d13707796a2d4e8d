package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/logger"
)

/**
 * Unit renderer produces systemd service/timer descriptors for the report jobs
 * @description
 * - Templates ship with the agent; the rendered service text gains one
 *   Environment= line per configured proxy kind
 * - Output is deterministic: equal inputs render byte-identical unit files
 * - Both files are written before the timer unit is enabled
 */
type UnitRenderer struct {
	init        InitSystem
	proxies     config.ProxyConfig
	unitDir     string
	templateDir string
}

func NewUnitRenderer(init InitSystem, proxies config.ProxyConfig) *UnitRenderer {
	return &UnitRenderer{
		init:        init,
		proxies:     proxies,
		unitDir:     config.SystemdUnitDir,
		templateDir: config.UnitTemplateDir(),
	}
}

/**
 * Render the unit pair for one report service
 * @param {string} service - Managed service name
 * @returns {string} Rendered service file text
 * @returns {string} Rendered timer file text
 * @returns {error} ErrFilesystem-wrapped error when a template cannot be read
 */
func (u *UnitRenderer) Render(service string) (string, string, error) {
	serviceTxt, err := os.ReadFile(filepath.Join(u.templateDir, service+".service"))
	if err != nil {
		return "", "", fmt.Errorf("%w: read service template for %s: %v", ErrFilesystem, service, err)
	}
	timerTxt, err := os.ReadFile(filepath.Join(u.templateDir, service+".timer"))
	if err != nil {
		return "", "", fmt.Errorf("%w: read timer template for %s: %v", ErrFilesystem, service, err)
	}

	proxyLines := ""
	if u.proxies.HTTP != "" {
		proxyLines += "\nEnvironment=HTTP_PROXY=" + u.proxies.HTTP
	}
	if u.proxies.HTTPS != "" {
		proxyLines += "\nEnvironment=HTTPS_PROXY=" + u.proxies.HTTPS
	}
	if u.proxies.Rsync != "" {
		proxyLines += "\nEnvironment=RSYNC_PROXY=" + u.proxies.Rsync
	}

	return string(serviceTxt) + proxyLines, string(timerTxt), nil
}

/**
 * Render and register the unit pair with the init system
 * @param {string} service - Managed service name
 * @returns {error} Typed error on render, write or enable failure
 * @description
 * - Creates the unit directory if absent
 * - Files may remain on disk when enabling fails; there is no rollback
 */
func (u *UnitRenderer) RenderAndRegister(ctx context.Context, service string) error {
	serviceTxt, timerTxt, err := u.Render(service)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(u.unitDir, 0755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrFilesystem, u.unitDir, err)
	}
	if err := os.WriteFile(filepath.Join(u.unitDir, service+".service"), []byte(serviceTxt), 0644); err != nil {
		return fmt.Errorf("%w: write %s.service: %v", ErrFilesystem, service, err)
	}
	if err := os.WriteFile(filepath.Join(u.unitDir, service+".timer"), []byte(timerTxt), 0644); err != nil {
		return fmt.Errorf("%w: write %s.timer: %v", ErrFilesystem, service, err)
	}
	logger.Debugf("Systemd units for %s created", service)

	return u.init.EnableNow(ctx, service+".timer")
}

/**
 * Register units for every managed report service
 * @returns {error} First registration failure; remaining services are not attempted
 */
func (u *UnitRenderer) SetupAll(ctx context.Context) error {
	for _, service := range config.ReportServices {
		if err := u.RenderAndRegister(ctx, service); err != nil {
			return err
		}
	}
	return nil
}
