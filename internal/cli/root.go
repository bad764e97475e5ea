package cli

import (
	"github.com/piplan-io/piplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sessions  service.SessionService
	Teams     service.TeamService
	Features  service.FeatureService
	Plan      service.PlanService
	Reconcile service.ReconcileService
	Versions  service.VersionService
}

// NewRootCmd creates the top-level "piplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "piplan",
		Short: "Program increment planner with capacity-aware assignment",
	}

	root.AddCommand(
		newSessionCmd(app),
		newTeamCmd(app),
		newFeatureCmd(app),
		newAssignCmd(app),
		newUnassignCmd(app),
		newPlanCmd(app),
		newVersionCmd(app),
		newCapacityCmd(app),
		newBoardCmd(app),
	)

	return root
}
