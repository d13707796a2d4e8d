package server

import (
	"net"
	"net/http"

	"staticreports-agent/cmd/root"
	"staticreports-agent/controllers"
	"staticreports-agent/internal/config"
	"staticreports-agent/internal/env"
	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/middleware"
	"staticreports-agent/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the agent daemon serving the hook and status API",
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(); err != nil {
			logger.Fatal(err)
		}
	},
}

/**
 * Start the daemon serving hooks, status, health and metrics
 * @returns {error} Returns error if a listener or the HTTP server fails
 * @description
 * - Lifecycle events arrive through the same reconciler the CLI uses
 * - Serves on TCP plus a local unix socket for CLI calls
 * - A background monitor probes the front-end and pushes metrics
 */
func startServer() error {
	gin.SetMode(config.Config.Server.Mode)
	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	reconciler := services.NewReconciler(&config.Config)

	hookController := controllers.NewHookController(reconciler)
	hookController.RegisterRoutes(router)
	statusController := controllers.NewStatusController(reconciler)
	statusController.RegisterRoutes(router)

	listeners, port, err := CreateListeners(config.Config.Server.Address)
	if err != nil {
		return err
	}
	env.Daemon = true
	env.ListenPort = port

	monitor := services.NewMonitorService(&config.Config)
	go monitor.StartMonitoring(reconciler)

	errCh := make(chan error, len(listeners))
	for _, l := range listeners {
		go func(l net.Listener) {
			errCh <- http.Serve(l, router)
		}(l)
	}
	return <-errCh
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
