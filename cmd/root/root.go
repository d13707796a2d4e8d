package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "staticreports-agent",
	Short: "Operational agent for the Ubuntu static reports host",
	Long:  `staticreports-agent provisions and supervises the static report services: OS packages, source checkouts, nginx site, systemd service/timer units and Launchpad credentials`,
}
