package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staticreports-agent/cmd/root"
	"staticreports-agent/internal/config"
	"staticreports-agent/internal/models"
	"staticreports-agent/internal/rpc"
	"staticreports-agent/services"

	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Dispatch a lifecycle event (install/upgrade/start/config-changed/refresh)",
	Long:  `Dispatch a lifecycle event from the hosting platform to the reconciler`,
}

const hookExample = `  # provision the host
  staticreports-agent hook install

  # re-resolve the external URL and refresh the Launchpad credentials
  staticreports-agent hook config-changed`

/**
 * Dispatch one lifecycle event
 * @param {models.LifecycleEvent} event - Event to process
 * @returns {error} Returns error if dispatch fails, nil on success
 * @description
 * - First tries the running agent daemon over the RPC client
 * - Falls back to handling the event in-process when no daemon answers
 * - Prints the resulting unit status either way
 */
func dispatchHook(ctx context.Context, event models.LifecycleEvent) error {
	// 优先通过RPC把事件交给常驻daemon处理
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = 15 * time.Minute
	rpcClient := rpc.NewHTTPClient(cfg)
	defer rpcClient.Close()

	apiPath := fmt.Sprintf("/staticreports/api/v1/hooks/%s", event)
	resp, err := rpcClient.Post(apiPath, nil)
	if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var status models.UnitStatus
		if err := json.Unmarshal(resp.Body, &status); err != nil {
			return fmt.Errorf("decode daemon response: %v", err)
		}
		printStatus(status)
		return nil
	}

	// daemon不可达或调用失败，本地处理
	return dispatchHookLocally(ctx, event)
}

func dispatchHookLocally(ctx context.Context, event models.LifecycleEvent) error {
	reconciler := services.NewReconciler(&config.Config)
	status := reconciler.HandleEvent(ctx, event)
	printStatus(status)
	if status.State == models.StatusBlocked {
		return fmt.Errorf("event %s left the unit blocked", event)
	}
	return nil
}

func printStatus(status models.UnitStatus) {
	if status.Message != "" {
		fmt.Printf("%s: %s\n", status.State, status.Message)
	} else {
		fmt.Println(status.State)
	}
}

func init() {
	root.RootCmd.AddCommand(hookCmd)

	hookCmd.Example = hookExample
}
