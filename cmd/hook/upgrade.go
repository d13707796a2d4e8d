package hook

import (
	"context"
	"fmt"

	"staticreports-agent/internal/models"

	"github.com/spf13/cobra"
)

// 升级与安装走同一套幂等处理流程
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Re-provision the host after an agent upgrade",
	Run: func(cmd *cobra.Command, args []string) {
		if err := dispatchHook(context.Background(), models.EventUpgrade); err != nil {
			fmt.Println(err)
		}
	},
}

func init() {
	hookCmd.AddCommand(upgradeCmd)
}
