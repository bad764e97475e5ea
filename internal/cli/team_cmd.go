package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage session teams",
	}

	cmd.AddCommand(
		newTeamAddCmd(app),
		newTeamListCmd(app),
		newTeamUpdateCmd(app),
		newTeamRemoveCmd(app),
	)

	return cmd
}

// parseOverrides parses repeated "sprint=points" flag values.
func parseOverrides(values []string) (map[int]int, error) {
	if len(values) == 0 {
		return nil, nil
	}
	overrides := make(map[int]int, len(values))
	for _, v := range values {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --override format %q, expected sprint=points", v)
		}
		num, err := strconv.Atoi(parts[0])
		if err != nil || num < 1 {
			return nil, fmt.Errorf("invalid sprint number in override %q", v)
		}
		pts, err := strconv.Atoi(parts[1])
		if err != nil || pts < 0 {
			return nil, fmt.Errorf("invalid points in override %q", v)
		}
		overrides[num] = pts
	}
	return overrides, nil
}

func newTeamAddCmd(app *App) *cobra.Command {
	var session, name, board string
	var velocity, adjustment int
	var overrideFlags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team to a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			overrides, err := parseOverrides(overrideFlags)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			t := &domain.Team{
				ID:              uuid.New().String(),
				SessionID:       sessionID,
				Name:            name,
				BoardID:         board,
				Velocity:        velocity,
				AdjustmentPct:   adjustment,
				SprintOverrides: overrides,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := app.Teams.Add(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Added team %s (velocity %d, adjustment %d%%)\n", t.Name, t.Velocity, t.AdjustmentPct)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Team name")
	cmd.Flags().StringVar(&board, "board", "", "External tracker board ID")
	cmd.Flags().IntVar(&velocity, "velocity", 0, "Velocity in points per sprint")
	cmd.Flags().IntVar(&adjustment, "adjustment", 100, "Capacity adjustment percentage")
	cmd.Flags().StringArrayVar(&overrideFlags, "override", nil, "Per-sprint capacity override (sprint=points)")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("velocity")

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams in a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			teams, err := app.Teams.ListBySession(ctx, sessionID)
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Println("No teams in session.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTeamList(teams))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newTeamUpdateCmd(app *App) *cobra.Command {
	var session, name, board string
	var velocity, adjustment int
	var overrideFlags []string

	cmd := &cobra.Command{
		Use:   "update TEAM",
		Short: "Update a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			teamID, err := resolveTeamID(ctx, app, sessionID, args[0])
			if err != nil {
				return err
			}
			t, err := app.Teams.GetByID(ctx, teamID)
			if err != nil {
				return err
			}

			if !anyChanged(cmd.Flags(), "name", "board", "velocity", "adjustment", "override") {
				return fmt.Errorf("nothing to update: pass at least one flag")
			}

			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("board") {
				t.BoardID = board
			}
			if cmd.Flags().Changed("velocity") {
				t.Velocity = velocity
			}
			if cmd.Flags().Changed("adjustment") {
				t.AdjustmentPct = adjustment
			}
			if cmd.Flags().Changed("override") {
				overrides, err := parseOverrides(overrideFlags)
				if err != nil {
					return err
				}
				t.SprintOverrides = overrides
			}
			t.UpdatedAt = time.Now().UTC()

			if err := app.Teams.Update(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Updated team %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Team name")
	cmd.Flags().StringVar(&board, "board", "", "External tracker board ID")
	cmd.Flags().IntVar(&velocity, "velocity", 0, "Velocity in points per sprint")
	cmd.Flags().IntVar(&adjustment, "adjustment", 100, "Capacity adjustment percentage")
	cmd.Flags().StringArrayVar(&overrideFlags, "override", nil, "Per-sprint capacity override (sprint=points), replaces all")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "remove TEAM",
		Short: "Remove a team from a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			teamID, err := resolveTeamID(ctx, app, sessionID, args[0])
			if err != nil {
				return err
			}
			if err := app.Teams.Remove(ctx, teamID); err != nil {
				return err
			}
			fmt.Printf("Removed team %s\n", teamID)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
