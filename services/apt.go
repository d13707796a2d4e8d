package services

import (
	"context"
	"fmt"
	"strings"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/utils"
)

// PackageManager 操作系统包管理器接口
type PackageManager interface {
	Update(ctx context.Context) error
	AddPackage(ctx context.Context, name string) error
}

type aptManager struct {
	extraEnv []string
}

/**
 * Create package manager backed by apt-get
 * @param {[]string} extraEnv - Extra environment entries (proxy settings) for apt invocations
 * @returns {PackageManager} Returns apt-backed package manager
 */
func NewAptManager(extraEnv []string) PackageManager {
	return &aptManager{
		extraEnv: append([]string{"DEBIAN_FRONTEND=noninteractive"}, extraEnv...),
	}
}

// Update 刷新包索引
func (a *aptManager) Update(ctx context.Context) error {
	out, err := utils.RunCommand(ctx, "", a.extraEnv, "apt-get", "update", "-qq")
	if err != nil {
		logger.Errorf("Failed to update package cache: %v (%s)", err, out)
		return fmt.Errorf("%w: apt-get update: %v", ErrPackaging, err)
	}
	logger.Debug("Apt index refreshed")
	return nil
}

/**
 * Install a single package
 * @param {context.Context} ctx - Context bounding the apt call
 * @param {string} name - Package name
 * @returns {error} Returns ErrPackaging-wrapped error on lookup or install failure
 */
func (a *aptManager) AddPackage(ctx context.Context, name string) error {
	out, err := utils.RunCommand(ctx, "", a.extraEnv, "apt-get", "install", "-y", name)
	if err != nil {
		if strings.Contains(out, "Unable to locate package") {
			logger.Errorf("Failed to find package %s in package cache", name)
			return fmt.Errorf("%w: package %s not found", ErrPackaging, name)
		}
		logger.Errorf("Failed to install %s: %v (%s)", name, err, out)
		return fmt.Errorf("%w: install %s: %v", ErrPackaging, name, err)
	}
	logger.Debugf("Package %s installed", name)
	return nil
}
