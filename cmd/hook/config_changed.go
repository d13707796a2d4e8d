package hook

import (
	"context"
	"fmt"

	"staticreports-agent/internal/models"

	"github.com/spf13/cobra"
)

// ingress变化也走这条路径：URL重算和凭据重查都在config-changed里完成
var configChangedCmd = &cobra.Command{
	Use:   "config-changed",
	Short: "Re-resolve the external URL and refresh the Launchpad credentials",
	Run: func(cmd *cobra.Command, args []string) {
		if err := dispatchHook(context.Background(), models.EventConfigChanged); err != nil {
			fmt.Println(err)
		}
	},
}

func init() {
	hookCmd.AddCommand(configChangedCmd)
}
