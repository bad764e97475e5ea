package cli

import (
	"context"
	"fmt"

	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCapacityCmd(app *App) *cobra.Command {
	var session, team string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show per-sprint load for one team or all teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}

			teamID := ""
			if team != "" {
				teamID, err = resolveTeamID(ctx, app, sessionID, team)
				if err != nil {
					return err
				}
			}

			rows, err := app.Plan.CapacitySummary(ctx, sessionID, teamID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatCapacitySummary(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&team, "team", "", "Team name, board ID or ID (all teams when omitted)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newBoardCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board: team lanes, sprint columns, backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			board, err := app.Plan.Kanban(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatKanbanBoard(board))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
