package services

import (
	"context"
	"fmt"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/utils"
)

/**
 * Init system control plane
 * @description
 * - EnableNow enables a unit and starts it immediately
 * - Restart waits for the unit to be restarted
 * - Start issues a start request; block=false returns once the request is
 *   accepted, block=true waits for the job to run to completion
 */
type InitSystem interface {
	EnableNow(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
	Start(ctx context.Context, unit string, block bool) (string, error)
}

type systemdClient struct{}

// NewSystemdClient 返回基于systemctl的init系统客户端
func NewSystemdClient() InitSystem {
	return &systemdClient{}
}

func (s *systemdClient) EnableNow(ctx context.Context, unit string) error {
	out, err := utils.RunCommand(ctx, "", nil, "systemctl", "enable", "--now", unit)
	if err != nil {
		logger.Errorf("Failed to enable %s: %v (%s)", unit, err, out)
		return fmt.Errorf("%w: enable --now %s: %v", ErrInitSystem, unit, err)
	}
	logger.Debugf("Unit %s enabled and started", unit)
	return nil
}

func (s *systemdClient) Restart(ctx context.Context, unit string) error {
	out, err := utils.RunCommand(ctx, "", nil, "systemctl", "restart", unit)
	if err != nil {
		logger.Errorf("Failed to restart %s: %v (%s)", unit, err, out)
		return fmt.Errorf("%w: restart %s: %v", ErrInitSystem, unit, err)
	}
	logger.Debugf("Unit %s restarted", unit)
	return nil
}

/**
 * Start a unit
 * @param {string} unit - Unit name including suffix
 * @param {bool} block - False passes --no-block so the call returns once accepted
 * @returns {string} Combined control-plane output for diagnostics
 * @returns {error} Returns ErrInitSystem-wrapped error on non-zero exit
 */
func (s *systemdClient) Start(ctx context.Context, unit string, block bool) (string, error) {
	args := []string{"start"}
	if !block {
		args = append(args, "--no-block")
	}
	args = append(args, unit)
	out, err := utils.RunCommand(ctx, "", nil, "systemctl", args...)
	if err != nil {
		logger.Errorf("Failed to start %s: %v (%s)", unit, err, out)
		return out, fmt.Errorf("%w: start %s: %v", ErrInitSystem, unit, err)
	}
	return out, nil
}
