package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"staticreports-agent/internal/config"
)

// newTestRenderer 在临时目录下布置模板并返回可检查的renderer
func newTestRenderer(t *testing.T, init InitSystem, proxies config.ProxyConfig, services []string) *UnitRenderer {
	t.Helper()
	templateDir := t.TempDir()
	unitDir := t.TempDir()
	for _, service := range services {
		serviceTxt := "[Unit]\nDescription=" + service + "\n\n[Service]\nType=oneshot\nUser=ubuntu\nExecStart=/usr/bin/" + service
		timerTxt := "[Unit]\nDescription=Run " + service + "\n\n[Timer]\nOnCalendar=hourly\n\n[Install]\nWantedBy=timers.target\n"
		if err := os.WriteFile(filepath.Join(templateDir, service+".service"), []byte(serviceTxt), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(templateDir, service+".timer"), []byte(timerTxt), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return &UnitRenderer{
		init:        init,
		proxies:     proxies,
		unitDir:     unitDir,
		templateDir: templateDir,
	}
}

func TestRenderProxyEnvironmentLines(t *testing.T) {
	tests := []struct {
		name    string
		proxies config.ProxyConfig
		want    []string
		absent  []string
	}{
		{
			name:    "no proxies",
			proxies: config.ProxyConfig{},
			absent:  []string{"Environment="},
		},
		{
			name:    "http only",
			proxies: config.ProxyConfig{HTTP: "http://proxy.internal:3128", Rsync: "proxy.internal:3128"},
			want: []string{
				"\nEnvironment=HTTP_PROXY=http://proxy.internal:3128",
				"\nEnvironment=RSYNC_PROXY=proxy.internal:3128",
			},
			absent: []string{"HTTPS_PROXY"},
		},
		{
			name:    "https only",
			proxies: config.ProxyConfig{HTTPS: "http://proxy.internal:3129"},
			want:    []string{"\nEnvironment=HTTPS_PROXY=http://proxy.internal:3129"},
			absent:  []string{"HTTP_PROXY=http://", "RSYNC_PROXY"},
		},
		{
			name: "all kinds",
			proxies: config.ProxyConfig{
				HTTP:  "http://proxy.internal:3128",
				HTTPS: "http://proxy.internal:3129",
				Rsync: "proxy.internal:3128",
			},
			want: []string{
				"Environment=HTTP_PROXY=http://proxy.internal:3128\nEnvironment=HTTPS_PROXY=http://proxy.internal:3129\nEnvironment=RSYNC_PROXY=proxy.internal:3128",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := newTestRenderer(t, &fakeInitSystem{}, tt.proxies, []string{"packageset-report"})
			serviceTxt, timerTxt, err := renderer.Render("packageset-report")
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(serviceTxt, want) {
					t.Errorf("service text missing %q:\n%s", want, serviceTxt)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(serviceTxt, absent) {
					t.Errorf("service text unexpectedly contains %q:\n%s", absent, serviceTxt)
				}
			}
			if strings.Contains(timerTxt, "Environment=") {
				t.Errorf("timer text must not gain proxy lines:\n%s", timerTxt)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	proxies := config.ProxyConfig{HTTP: "http://proxy.internal:3128", Rsync: "proxy.internal:3128"}
	renderer := newTestRenderer(t, &fakeInitSystem{}, proxies, []string{"update-seeds"})

	first, firstTimer, err := renderer.Render("update-seeds")
	if err != nil {
		t.Fatal(err)
	}
	second, secondTimer, err := renderer.Render("update-seeds")
	if err != nil {
		t.Fatal(err)
	}
	if first != second || firstTimer != secondTimer {
		t.Error("renders of identical inputs differ")
	}
}

func TestRenderAndRegisterWritesUnitPair(t *testing.T) {
	init := &fakeInitSystem{}
	renderer := newTestRenderer(t, init, config.ProxyConfig{}, []string{"update-seeds"})

	if err := renderer.RenderAndRegister(context.Background(), "update-seeds"); err != nil {
		t.Fatalf("RenderAndRegister failed: %v", err)
	}
	for _, name := range []string{"update-seeds.service", "update-seeds.timer"} {
		if _, err := os.Stat(filepath.Join(renderer.unitDir, name)); err != nil {
			t.Errorf("unit file %s not written: %v", name, err)
		}
	}
	if len(init.enabled) != 1 || init.enabled[0] != "update-seeds.timer" {
		t.Errorf("expected the timer unit to be enabled, got %v", init.enabled)
	}
}

func TestRenderAndRegisterMissingTemplate(t *testing.T) {
	renderer := newTestRenderer(t, &fakeInitSystem{}, config.ProxyConfig{}, nil)

	err := renderer.RenderAndRegister(context.Background(), "packageset-report")
	if err == nil {
		t.Fatal("expected an error for a missing template")
	}
	if !strings.Contains(err.Error(), "packageset-report") {
		t.Errorf("error does not name the service: %v", err)
	}
}

func TestSetupAllStopsAtFirstFailure(t *testing.T) {
	init := &fakeInitSystem{failUnit: config.ReportServices[1] + ".timer"}
	renderer := newTestRenderer(t, init, config.ProxyConfig{}, config.ReportServices)

	err := renderer.SetupAll(context.Background())
	if err == nil {
		t.Fatal("expected SetupAll to propagate the enable failure")
	}
	// 第一个成功注册，失败之后的不再尝试
	if len(init.enabled) != 1 || init.enabled[0] != config.ReportServices[0]+".timer" {
		t.Errorf("expected only %s.timer enabled, got %v", config.ReportServices[0], init.enabled)
	}
	// 失败的unit文件已写盘，没有回滚
	if _, statErr := os.Stat(filepath.Join(renderer.unitDir, config.ReportServices[1]+".service")); statErr != nil {
		t.Errorf("unit file of the failed service should remain on disk: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(renderer.unitDir, config.ReportServices[2]+".service")); statErr == nil {
		t.Error("services after the failure must not be rendered")
	}
}
