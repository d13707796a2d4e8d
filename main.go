package main

import (
	"os"

	_ "staticreports-agent/cmd"
	"staticreports-agent/cmd/root"
	"staticreports-agent/internal/config"
	"staticreports-agent/internal/logger"
)

func main() {
	// server模式同时把日志送到控制台
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"

	logger.InitLogger(config.Config.Log.Level, config.Config.Log.Path, isServerMode)

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
