package hook

import (
	"context"
	"fmt"

	"staticreports-agent/internal/models"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the front-end web server and the report jobs",
	Run: func(cmd *cobra.Command, args []string) {
		if err := dispatchHook(context.Background(), models.EventStart); err != nil {
			fmt.Println(err)
		}
	},
}

func init() {
	hookCmd.AddCommand(startCmd)
}
