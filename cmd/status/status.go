package status

import (
	"encoding/json"
	"fmt"
	"time"

	"staticreports-agent/cmd/root"
	"staticreports-agent/internal/rpc"
	"staticreports-agent/services"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the externally visible unit status",
	Run: func(cmd *cobra.Command, args []string) {
		if err := showStatus(); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 * Show current unit status
 * @returns {error} Returns error if neither the daemon nor a state snapshot answers
 * @description
 * - Asks the running daemon first
 * - Falls back to the state snapshot exported after the last event
 */
func showStatus() error {
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = 5 * time.Second
	rpcClient := rpc.NewHTTPClient(cfg)
	defer rpcClient.Close()

	resp, err := rpcClient.Get("/staticreports/api/v1/status", nil)
	if err == nil && resp.StatusCode == 200 {
		var pretty json.RawMessage = resp.Body
		out, err := json.MarshalIndent(pretty, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	// daemon不可达，读取最近一次导出的状态快照
	state, err := services.LoadState()
	if err != nil {
		return fmt.Errorf("agent daemon is not reachable and no state snapshot exists: %v", err)
	}
	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	root.RootCmd.AddCommand(statusCmd)

	statusCmd.Example = `  staticreports-agent status`
}
