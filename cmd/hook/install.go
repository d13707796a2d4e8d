package hook

import (
	"context"
	"fmt"

	"staticreports-agent/internal/models"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the host environment and register all report units",
	Run: func(cmd *cobra.Command, args []string) {
		if err := dispatchHook(context.Background(), models.EventInstall); err != nil {
			fmt.Println(err)
		}
	},
}

func init() {
	hookCmd.AddCommand(installCmd)
}
