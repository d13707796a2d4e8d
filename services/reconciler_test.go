package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/env"
	"staticreports-agent/internal/models"
)

type reconcilerParts struct {
	pkgs  *fakePackageManager
	git   *fakeGitClient
	init  *fakeInitSystem
	store *fakeSecretStore
	cfg   *config.AppConfig
}

// newTestReconciler 用可注入的fake协作对象组装reconciler
func newTestReconciler(t *testing.T) (*Reconciler, *reconcilerParts) {
	t.Helper()

	// 状态快照重定向到临时目录
	origAgentDir := env.AgentDir
	env.AgentDir = t.TempDir()
	t.Cleanup(func() { env.AgentDir = origAgentDir })

	spec, _ := newTestSpec(t)
	parts := &reconcilerParts{
		pkgs:  &fakePackageManager{},
		git:   &fakeGitClient{},
		init:  &fakeInitSystem{},
		store: &fakeSecretStore{content: map[string]string{lpOAuthKeyField: "oauth-token-data"}},
		cfg:   &config.AppConfig{},
	}
	parts.cfg.Agent.IngressURL = "https://reports.example.com"
	parts.cfg.Secrets.LpuserSecretID = "secret:abc"

	renderer := newTestRenderer(t, parts.init, config.ProxyConfig{}, config.ReportServices)
	creds := NewCredentialResolver(parts.store, filepath.Join(t.TempDir(), "key.oauth"), "", "")
	rec := NewReconcilerWithParts(
		parts.cfg,
		NewProvisioner(parts.pkgs, parts.git, spec),
		renderer,
		NewServiceManager(parts.init),
		creds,
		NewURLProvider(parts.cfg),
	)
	return rec, parts
}

func TestHandleInstallReady(t *testing.T) {
	rec, parts := newTestReconciler(t)

	status := rec.HandleEvent(context.Background(), models.EventInstall)
	if status.State != models.StatusReady || status.Message != "" {
		t.Fatalf("install should end ready, got %+v", status)
	}
	// 每个报表任务注册一个timer
	if len(parts.init.enabled) != len(config.ReportServices) {
		t.Errorf("enabled %d timers, want %d", len(parts.init.enabled), len(config.ReportServices))
	}
	if rec.OpenPort() != 0 {
		t.Error("install must not open the port")
	}
}

func TestHandleInstallPackagingBlocked(t *testing.T) {
	rec, parts := newTestReconciler(t)
	parts.pkgs.updateErr = errors.New("mirror down")

	status := rec.HandleEvent(context.Background(), models.EventInstall)
	if status.State != models.StatusBlocked {
		t.Fatalf("packaging failure should block, got %+v", status)
	}
	if status.Message != "Failed to set up the environment. Check the agent log for details." {
		t.Errorf("unexpected operator message: %q", status.Message)
	}
	if len(parts.init.enabled) != 0 {
		t.Error("no unit may be registered after a failed provision")
	}
}

func TestHandleUpgradeReprovisions(t *testing.T) {
	rec, parts := newTestReconciler(t)

	if status := rec.HandleEvent(context.Background(), models.EventInstall); status.State != models.StatusReady {
		t.Fatalf("install failed: %+v", status)
	}
	if status := rec.HandleEvent(context.Background(), models.EventUpgrade); status.State != models.StatusReady {
		t.Fatalf("upgrade failed: %+v", status)
	}
	// 第二轮对既有检出执行pull而不是clone
	if len(parts.git.clones) != 1 || len(parts.git.pulls) != 1 {
		t.Errorf("clones=%v pulls=%v, want one of each across install+upgrade", parts.git.clones, parts.git.pulls)
	}
}

func TestHandleStartOpensPort(t *testing.T) {
	rec, parts := newTestReconciler(t)

	status := rec.HandleEvent(context.Background(), models.EventStart)
	if status.State != models.StatusReady {
		t.Fatalf("start should end ready, got %+v", status)
	}
	if rec.OpenPort() != config.FrontendPort {
		t.Errorf("open port = %d, want %d", rec.OpenPort(), config.FrontendPort)
	}
	if len(parts.init.restarted) != 1 || parts.init.restarted[0] != config.FrontendUnit {
		t.Errorf("front-end restart calls = %v", parts.init.restarted)
	}
	// 报表任务的启动请求不阻塞等待
	for _, call := range parts.init.started {
		if !strings.HasSuffix(call, "block=false") {
			t.Errorf("report job start must be non-blocking: %q", call)
		}
	}
}

func TestHandleStartFrontendFailureBlocked(t *testing.T) {
	rec, parts := newTestReconciler(t)
	parts.init.failUnit = config.FrontendUnit

	status := rec.HandleEvent(context.Background(), models.EventStart)
	if status.State != models.StatusBlocked {
		t.Fatalf("front-end failure should block, got %+v", status)
	}
	if rec.OpenPort() != 0 {
		t.Error("port must stay closed after a failed start")
	}
}

func TestHandleConfigChangedReady(t *testing.T) {
	rec, parts := newTestReconciler(t)

	status := rec.HandleEvent(context.Background(), models.EventConfigChanged)
	if status.State != models.StatusReady {
		t.Fatalf("config-changed should end ready, got %+v", status)
	}
	if parts.store.lastID != "secret:abc" {
		t.Errorf("secret queried with id %q", parts.store.lastID)
	}
}

func TestHandleConfigChangedNoSecretBlocked(t *testing.T) {
	rec, parts := newTestReconciler(t)
	parts.cfg.Secrets.LpuserSecretID = ""

	status := rec.HandleEvent(context.Background(), models.EventConfigChanged)
	if status.State != models.StatusBlocked {
		t.Fatalf("missing secret config should block, got %+v", status)
	}
	if status.Message != "Launchpad oauth token config missing." {
		t.Errorf("unexpected operator message: %q", status.Message)
	}
}

func TestHandleConfigChangedSecretLookupBlocked(t *testing.T) {
	rec, parts := newTestReconciler(t)
	parts.store.err = ErrSecretAccessDenied
	parts.store.content = nil

	status := rec.HandleEvent(context.Background(), models.EventConfigChanged)
	if status.State != models.StatusBlocked || status.Message != "Launchpad oauth token config missing." {
		t.Fatalf("denied secret should block with the token message, got %+v", status)
	}
}

func TestHandleConfigChangedInvalidIngressBlocked(t *testing.T) {
	rec, parts := newTestReconciler(t)
	parts.cfg.Agent.IngressURL = "not a url at all"

	status := rec.HandleEvent(context.Background(), models.EventConfigChanged)
	if status.State != models.StatusBlocked {
		t.Fatalf("invalid ingress should block, got %+v", status)
	}
	if status.Message != "Invalid configuration. Check the agent log for details." {
		t.Errorf("unexpected operator message: %q", status.Message)
	}
	// URL校验失败时不触碰凭据
	if parts.store.lastID != "" {
		t.Error("secret store must not be consulted when the url is invalid")
	}
}

func TestHandleRefreshFailureStaysReady(t *testing.T) {
	rec, parts := newTestReconciler(t)
	parts.init.failUnit = config.ReportServices[0] + ".service"

	status := rec.HandleEvent(context.Background(), models.EventRefresh)
	if status.State != models.StatusReady {
		t.Fatalf("refresh failure must not block the unit, got %+v", status)
	}
	if status.Message != "Failed to refresh the report. Check the agent log for details." {
		t.Errorf("unexpected operator message: %q", status.Message)
	}
}

func TestHandleRefreshBlocking(t *testing.T) {
	rec, parts := newTestReconciler(t)

	status := rec.HandleEvent(context.Background(), models.EventRefresh)
	if status.State != models.StatusReady || status.Message != "" {
		t.Fatalf("refresh should end ready, got %+v", status)
	}
	if len(parts.init.started) != len(config.ReportServices) {
		t.Fatalf("started %d jobs, want %d", len(parts.init.started), len(config.ReportServices))
	}
	for _, call := range parts.init.started {
		if !strings.HasSuffix(call, "block=true") {
			t.Errorf("refresh must wait for each job: %q", call)
		}
	}
}

func TestStateSnapshotExported(t *testing.T) {
	rec, _ := newTestReconciler(t)

	rec.HandleEvent(context.Background(), models.EventStart)

	state, err := LoadState()
	if err != nil {
		t.Fatalf("state snapshot not readable: %v", err)
	}
	if state.Status.State != models.StatusReady {
		t.Errorf("snapshot status = %+v", state.Status)
	}
	if state.OpenPort != config.FrontendPort {
		t.Errorf("snapshot open port = %d", state.OpenPort)
	}
	if len(state.Units) != len(config.ReportServices) {
		t.Errorf("snapshot lists %d units, want %d", len(state.Units), len(config.ReportServices))
	}
}
