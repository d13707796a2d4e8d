package hook

import (
	"context"
	"fmt"

	"staticreports-agent/internal/models"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run every report job to completion",
	Run: func(cmd *cobra.Command, args []string) {
		if err := dispatchHook(context.Background(), models.EventRefresh); err != nil {
			fmt.Println(err)
		}
	},
}

func init() {
	hookCmd.AddCommand(refreshCmd)
}
