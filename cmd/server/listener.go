package server

import (
	"net"
	"os"
	"path/filepath"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/rpc"
)

/**
 * Create TCP and unix socket listeners for the daemon API
 * @param {string} tcpAddress - TCP listen address (host:port)
 * @returns {[]net.Listener} Array of created listeners
 * @returns {int} TCP port actually bound
 * @returns {error} Error if the TCP listener cannot be created
 * @description
 * - The unix socket serves local CLI calls without a configured port
 * - A stale socket file from a previous run is removed before binding
 * - Unix socket failures only log; the TCP listener is the required one
 */
func CreateListeners(tcpAddress string) ([]net.Listener, int, error) {
	var listeners []net.Listener

	tcpListener, err := net.Listen("tcp", tcpAddress)
	if err != nil {
		return nil, 0, err
	}
	listeners = append(listeners, tcpListener)
	port := tcpListener.Addr().(*net.TCPAddr).Port
	logger.Infof("Daemon API listening on tcp %s", tcpListener.Addr())

	socketPath := rpc.GetSocketPath("staticreports-agent.sock", "")
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		logger.Warnf("Cannot create socket directory: %v", err)
		return listeners, port, nil
	}
	// 清理上次运行残留的socket文件
	os.Remove(socketPath)
	unixListener, err := net.Listen("unix", socketPath)
	if err != nil {
		logger.Warnf("Cannot listen on unix socket %s: %v", socketPath, err)
		return listeners, port, nil
	}
	listeners = append(listeners, unixListener)
	logger.Infof("Daemon API listening on unix %s", socketPath)

	return listeners, port, nil
}
