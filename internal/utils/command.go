package utils

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

/**
 * Run an external command and capture stdout and stderr together
 * @param {context.Context} ctx - Context bounding the command lifetime
 * @param {string} dir - Working directory, empty uses the current directory
 * @param {[]string} extraEnv - KEY=VALUE entries appended to the process environment
 * @param {string} name - Command name
 * @param {...string} args - Command arguments
 * @returns {string} Combined stdout/stderr output
 * @returns {error} Returns error on non-zero exit, start failure or context timeout
 * @description
 * - Output is captured combined so failures carry full diagnostics
 * - The context deadline kills the command when exceeded
 */
func RunCommand(ctx context.Context, dir string, extraEnv []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), extraEnv...)
	out, err := cmd.CombinedOutput()
	output := strings.TrimRight(string(out), "\n")
	if ctx.Err() != nil {
		// 超时或取消比退出码更有诊断价值
		return output, ctx.Err()
	}
	return output, err
}
