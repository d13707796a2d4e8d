package env

import (
	"os"
	"path/filepath"
)

var Daemon bool = false
var ListenPort int = 0

// (default: /var/lib/staticreports-agent, override with STATICREPORTS_AGENT_HOME)
var AgentDir string = GetAgentDir()

// (default: /usr/share/staticreports-agent, override with STATICREPORTS_AGENT_ASSETS)
var AssetsDir string = GetAssetsDir()

/**
 * Get agent working directory path
 * @returns {string} Returns agent directory path
 */
func GetAgentDir() string {
	if dir := os.Getenv("STATICREPORTS_AGENT_HOME"); dir != "" {
		return dir
	}
	return filepath.Join("/var/lib", "staticreports-agent")
}

/**
 * Get directory holding the shipped assets (systemd templates, nginx site, scripts)
 * @returns {string} Returns assets directory path
 */
func GetAssetsDir() string {
	if dir := os.Getenv("STATICREPORTS_AGENT_ASSETS"); dir != "" {
		return dir
	}
	return filepath.Join("/usr/share", "staticreports-agent")
}
