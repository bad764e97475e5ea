package cli

import (
	"context"
	"fmt"

	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/piplan-io/piplan/internal/contract"
	"github.com/piplan-io/piplan/internal/service"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	var session, team, rationale string
	var startSprint, endSprint, points int
	var overflow, ignoreDeps, manual bool

	cmd := &cobra.Command{
		Use:   "assign KEY",
		Short: "Assign a feature to a team across a sprint range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			teamID, err := resolveTeamID(ctx, app, sessionID, team)
			if err != nil {
				return err
			}

			if endSprint == 0 {
				endSprint = startSprint
			}

			result, err := app.Plan.Assign(ctx, service.AssignRequest{
				SessionID: sessionID,
				Proposed: contract.Proposed{
					FeatureKey:      args[0],
					TeamID:          teamID,
					StartSprint:     startSprint,
					EndSprint:       endSprint,
					AllocatedPoints: points,
				},
				IsManualOverride:    manual,
				AllowOverflow:       overflow,
				RespectDependencies: !ignoreDeps,
				Rationale:           rationale,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s", formatter.FormatValidationResult(args[0], result))
			if !result.Accepted {
				return fmt.Errorf("assignment rejected")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&team, "team", "", "Team name, board ID or ID")
	cmd.Flags().IntVar(&startSprint, "sprint", 0, "Start sprint number")
	cmd.Flags().IntVar(&endSprint, "end-sprint", 0, "End sprint number (defaults to start)")
	cmd.Flags().IntVar(&points, "points", 0, "Allocated points (defaults to feature points)")
	cmd.Flags().BoolVar(&overflow, "overflow", false, "Accept the placement even over capacity")
	cmd.Flags().BoolVar(&ignoreDeps, "ignore-deps", false, "Skip dependency ordering checks")
	cmd.Flags().BoolVar(&manual, "manual", true, "Mark the assignment as a manual override")
	cmd.Flags().StringVar(&rationale, "rationale", "", "Free-text rationale")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("sprint")

	return cmd
}

func newUnassignCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "unassign KEY",
		Short: "Remove a feature's assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			if err := app.Plan.Unassign(ctx, sessionID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Unassigned %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
