package cmd

import (
	_ "staticreports-agent/cmd/hook"
	_ "staticreports-agent/cmd/root"
	_ "staticreports-agent/cmd/server"
	_ "staticreports-agent/cmd/status"
)
