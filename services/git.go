package services

import (
	"context"
	"fmt"
	"time"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/utils"
)

// Network bound per clone/pull operation.
const gitTimeout = 300 * time.Second

// GitClient 版本控制客户端接口
type GitClient interface {
	Clone(ctx context.Context, url, branch, target string) error
	Pull(ctx context.Context, branch, cwd string) error
}

type gitClient struct {
	extraEnv []string
	timeout  time.Duration
}

/**
 * Create git client
 * @param {[]string} extraEnv - Extra environment entries (proxy settings) for git invocations
 * @returns {GitClient} Returns exec-backed git client with a fixed network timeout
 */
func NewGitClient(extraEnv []string) GitClient {
	return &gitClient{
		extraEnv: extraEnv,
		timeout:  gitTimeout,
	}
}

func (g *gitClient) Clone(ctx context.Context, url, branch, target string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	out, err := utils.RunCommand(ctx, "", g.extraEnv, "git", "clone", "-b", branch, url, target)
	if err != nil {
		logger.Warnf("Git clone %s failed: %v (%s)", url, err, out)
		return fmt.Errorf("%w: clone %s: %v: %s", ErrSourceControl, url, err, out)
	}
	logger.Debugf("Cloned %s (%s) into %s", url, branch, target)
	return nil
}

func (g *gitClient) Pull(ctx context.Context, branch, cwd string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	out, err := utils.RunCommand(ctx, cwd, g.extraEnv, "git", "pull", "origin", branch)
	if err != nil {
		logger.Warnf("Git pull in %s failed: %v (%s)", cwd, err, out)
		return fmt.Errorf("%w: pull %s: %v: %s", ErrSourceControl, cwd, err, out)
	}
	logger.Debugf("Pulled %s in %s", branch, cwd)
	return nil
}
