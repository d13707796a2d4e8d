package services

import (
	"context"
	"fmt"
	"os"
)

// fakePackageManager 记录调用顺序，可注入失败
type fakePackageManager struct {
	calls      []string
	updateErr  error
	failOnPkg  string
	installErr error
}

func (f *fakePackageManager) Update(ctx context.Context) error {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return fmt.Errorf("%w: apt-get update: %v", ErrPackaging, f.updateErr)
	}
	return nil
}

func (f *fakePackageManager) AddPackage(ctx context.Context, name string) error {
	f.calls = append(f.calls, "install "+name)
	if f.failOnPkg == name {
		return fmt.Errorf("%w: package %s not found", ErrPackaging, name)
	}
	if f.installErr != nil {
		return fmt.Errorf("%w: install %s: %v", ErrPackaging, name, f.installErr)
	}
	return nil
}

// fakeGitClient 记录clone/pull调用
type fakeGitClient struct {
	clones []string
	pulls  []string
	err    error
}

func (f *fakeGitClient) Clone(ctx context.Context, url, branch, target string) error {
	f.clones = append(f.clones, target)
	if f.err != nil {
		return fmt.Errorf("%w: clone %s: %v", ErrSourceControl, url, f.err)
	}
	// 与真实clone一致，在目标路径留下检出目录
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("%w: clone %s: %v", ErrSourceControl, url, err)
	}
	return nil
}

func (f *fakeGitClient) Pull(ctx context.Context, branch, cwd string) error {
	f.pulls = append(f.pulls, cwd)
	if f.err != nil {
		return fmt.Errorf("%w: pull %s: %v", ErrSourceControl, cwd, f.err)
	}
	return nil
}

// fakeInitSystem 记录控制面调用，可对单个unit注入失败
type fakeInitSystem struct {
	enabled   []string
	restarted []string
	started   []string // "unit block=true/false"
	failUnit  string
}

func (f *fakeInitSystem) EnableNow(ctx context.Context, unit string) error {
	if f.failUnit == unit {
		return fmt.Errorf("%w: enable --now %s: exit status 1", ErrInitSystem, unit)
	}
	f.enabled = append(f.enabled, unit)
	return nil
}

func (f *fakeInitSystem) Restart(ctx context.Context, unit string) error {
	if f.failUnit == unit {
		return fmt.Errorf("%w: restart %s: exit status 1", ErrInitSystem, unit)
	}
	f.restarted = append(f.restarted, unit)
	return nil
}

func (f *fakeInitSystem) Start(ctx context.Context, unit string, block bool) (string, error) {
	if f.failUnit == unit {
		return "job failed", fmt.Errorf("%w: start %s: exit status 1", ErrInitSystem, unit)
	}
	f.started = append(f.started, fmt.Sprintf("%s block=%t", unit, block))
	return "", nil
}

// fakeSecretStore 返回固定内容或错误，并记录refresh标记
type fakeSecretStore struct {
	content     map[string]string
	err         error
	lastID      string
	lastRefresh bool
}

func (f *fakeSecretStore) GetContent(ctx context.Context, id string, refresh bool) (map[string]string, error) {
	f.lastID = id
	f.lastRefresh = refresh
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}
