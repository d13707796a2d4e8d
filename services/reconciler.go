package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/env"
	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/models"
)

// 对外可见的固定状态文案
const (
	msgSettingUp        = "Setting up environment"
	msgStarting         = "Starting services"
	msgUpdatingConfig   = "Updating configuration"
	msgRefreshing       = "Refreshing the report"
	msgSetupFailed      = "Failed to set up the environment. Check the agent log for details."
	msgStartFailed      = "Failed to start services. Check the agent log for details."
	msgInvalidConfig    = "Invalid configuration. Check the agent log for details."
	msgTokenMissing     = "Launchpad oauth token config missing."
	msgTokenWriteFailed = "Failed to update Launchpad oauth token."
	msgRefreshFailed    = "Failed to refresh the report. Check the agent log for details."
)

/**
 * Lifecycle reconciler maps platform events onto provisioning actions
 * @description
 * - One event is processed at a time; the platform serializes delivery and
 *   the mutex only guards against misbehaving callers
 * - Every handler sets the externally visible status exactly once per
 *   invocation: on success as its last action, on failure immediately
 * - The proxy snapshot is captured at construction and never re-read
 */
type Reconciler struct {
	prov    *Provisioner
	units   *UnitRenderer
	svc     *ServiceManager
	creds   *CredentialResolver
	urls    *URLProvider
	cfg     *config.AppConfig
	proxies config.ProxyConfig

	mu       sync.Mutex
	status   models.UnitStatus
	openPort int
}

/**
 * Create reconciler with real host collaborators
 * @param {*config.AppConfig} cfg - Application configuration
 * @returns {*Reconciler} Returns reconciler wired to apt, git, systemctl and the secret store
 */
func NewReconciler(cfg *config.AppConfig) *Reconciler {
	proxies := config.CaptureProxyConfig()
	environ := proxies.Environ()
	init := NewSystemdClient()
	return &Reconciler{
		prov:    NewProvisioner(NewAptManager(environ), NewGitClient(environ), config.ProvisionSpec()),
		units:   NewUnitRenderer(init, proxies),
		svc:     NewServiceManager(init),
		creds:   NewCredentialResolver(NewSecretStore(cfg.Secrets.BaseURL), config.LpOAuthKeyPath, config.LpOAuthKeyOwner, config.LpOAuthKeyGroup),
		urls:    NewURLProvider(cfg),
		cfg:     cfg,
		proxies: proxies,
		status:  models.UnitStatus{State: models.StatusTransitioning, Message: "Waiting for first event"},
	}
}

// NewReconcilerWithParts 注入自定义协作对象，测试用
func NewReconcilerWithParts(cfg *config.AppConfig, prov *Provisioner, units *UnitRenderer, svc *ServiceManager, creds *CredentialResolver, urls *URLProvider) *Reconciler {
	return &Reconciler{
		prov:   prov,
		units:  units,
		svc:    svc,
		creds:  creds,
		urls:   urls,
		cfg:    cfg,
		status: models.UnitStatus{State: models.StatusTransitioning, Message: "Waiting for first event"},
	}
}

// Status 返回当前对外可见状态
func (r *Reconciler) Status() models.UnitStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// OpenPort 返回已对外开放的端口，0表示尚未开放
func (r *Reconciler) OpenPort() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openPort
}

/**
 * Handle one lifecycle event
 * @param {models.LifecycleEvent} event - Event name from the platform
 * @returns {models.UnitStatus} Final status of the transition
 * @description
 * - install/upgrade provision the host and register all units
 * - start restarts the front-end, starts the jobs and opens the port
 * - config-changed re-resolves the URL and re-checks the credential
 * - refresh runs all jobs to completion; its failure annotates but
 *   does not block the unit
 */
func (r *Reconciler) HandleEvent(ctx context.Context, event models.LifecycleEvent) models.UnitStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	RecordHookInvocation(event)
	var status models.UnitStatus
	switch event {
	case models.EventInstall, models.EventUpgrade:
		status = r.handleInstall(ctx)
	case models.EventStart:
		status = r.handleStart(ctx)
	case models.EventConfigChanged:
		status = r.handleConfigChanged(ctx)
	case models.EventRefresh:
		status = r.handleRefresh(ctx)
	default:
		logger.Errorf("Unknown lifecycle event %q", event)
		status = r.status
	}
	if status.State == models.StatusBlocked || (status.State == models.StatusReady && status.Message != "") {
		RecordHookFailure(event)
	}
	r.exportState()
	return status
}

// setStatus 记录状态并同步指标，持锁调用
func (r *Reconciler) setStatus(status models.UnitStatus) models.UnitStatus {
	r.status = status
	RecordUnitStatus(status)
	logger.Infof("Unit status: %s %s", status.State, status.Message)
	return status
}

func (r *Reconciler) handleInstall(ctx context.Context) models.UnitStatus {
	r.setStatus(models.Transitioning(msgSettingUp))
	if err := r.prov.Provision(ctx); err != nil {
		logger.Errorf("Provisioning failed: %v", err)
		return r.setStatus(models.Blocked(msgSetupFailed))
	}
	if err := r.units.SetupAll(ctx); err != nil {
		logger.Errorf("Unit registration failed: %v", err)
		return r.setStatus(models.Blocked(msgSetupFailed))
	}
	return r.setStatus(models.Ready())
}

func (r *Reconciler) handleStart(ctx context.Context) models.UnitStatus {
	r.setStatus(models.Transitioning(msgStarting))
	if err := r.svc.Start(ctx); err != nil {
		logger.Errorf("Service start failed: %v", err)
		return r.setStatus(models.Blocked(msgStartFailed))
	}
	r.openPort = config.FrontendPort
	return r.setStatus(models.Ready())
}

func (r *Reconciler) handleConfigChanged(ctx context.Context) models.UnitStatus {
	logger.Debug("Config changed event")
	r.setStatus(models.Transitioning(msgUpdatingConfig))

	externalURL, err := r.urls.Resolve()
	if err != nil {
		logger.Errorf("URL configuration rejected: %v", err)
		return r.setStatus(models.Blocked(msgInvalidConfig))
	}
	r.svc.ConfigureURL(externalURL)
	logger.Debug("Config change done - url set")

	keyData, ok := r.creds.ResolveOAuthKey(ctx, r.cfg.Secrets.LpuserSecretID)
	if !ok {
		logger.Warn("Launchpad credentials unavailable, unable to gather uploaders")
		return r.setStatus(models.Blocked(msgTokenMissing))
	}
	logger.Debugf("Got lpoauthkey (length %d)", len(keyData))
	if !r.creds.Persist(keyData) {
		return r.setStatus(models.Blocked(msgTokenWriteFailed))
	}
	logger.Debug("Config change done - lp oauth key set")

	return r.setStatus(models.Ready())
}

func (r *Reconciler) handleRefresh(ctx context.Context) models.UnitStatus {
	r.setStatus(models.Transitioning(msgRefreshing))
	logger.Info("Refreshing the report")
	if err := r.svc.RefreshAll(ctx); err != nil {
		logger.Errorf("Report refresh failed: %v", err)
		// 刷新失败不阻塞unit，只附加消息
		return r.setStatus(models.ReadyWithMessage(msgRefreshFailed))
	}
	return r.setStatus(models.Ready())
}

/**
 * Export the state snapshot consumed by the status command and the rpc fallback
 * @description
 * - Written after every processed event, failures only logged
 */
func (r *Reconciler) exportState() {
	var units []models.ReportUnitState
	for _, service := range config.ReportServices {
		units = append(units, models.ReportUnitState{
			Name:    service,
			Timer:   service + ".timer",
			Service: service + ".service",
		})
	}
	state := models.AgentState{
		Status:   r.status,
		OpenPort: r.openPort,
		Units:    units,
		Env: models.EnvState{
			Daemon:     env.Daemon,
			ListenPort: env.ListenPort,
			AgentDir:   env.AgentDir,
		},
		UpdatedAt: time.Now(),
	}

	outputFile := filepath.Join(env.AgentDir, "share", "state.json")
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		logger.Errorf("Failed to export state to %s: %v", outputFile, err)
		return
	}
	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		logger.Errorf("Failed to export state to %s: %v", outputFile, err)
		return
	}
	if err := os.WriteFile(outputFile, jsonData, 0644); err != nil {
		logger.Errorf("Failed to export state to %s: %v", outputFile, err)
		return
	}
	logger.Debugf("State exported to %s", outputFile)
}

// LoadState 读取最近导出的状态快照
func LoadState() (*models.AgentState, error) {
	stateFile := filepath.Join(env.AgentDir, "share", "state.json")
	data, err := os.ReadFile(stateFile)
	if err != nil {
		return nil, fmt.Errorf("load state snapshot: %w", err)
	}
	var state models.AgentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state snapshot: %w", err)
	}
	return &state, nil
}
