package cli

import (
	"context"
	"fmt"

	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/service"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage planning sessions",
	}

	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
		newSessionInspectCmd(app),
		newSessionUpdateCmd(app),
		newSessionStatusCmd(app),
		newSessionRegenCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionAddCmd(app *App) *cobra.Command {
	var name, start string
	var sprintCount, sprintLength int
	var ipSprint bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new planning session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Create(context.Background(), service.CreateSessionRequest{
				Name:             name,
				StartDate:        start,
				SprintCount:      sprintCount,
				SprintLengthDays: sprintLength,
				IncludeIPSprint:  ipSprint,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created session %s (%d sprints from %s)\n",
				session.Name, session.TotalSprints(), session.StartDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Session name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&sprintCount, "sprints", 5, "Number of delivery sprints")
	cmd.Flags().IntVar(&sprintLength, "sprint-days", 14, "Sprint length in calendar days")
	cmd.Flags().BoolVar(&ipSprint, "ip-sprint", false, "Append a trailing innovation & planning sprint")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSessionList(sessions))
			return nil
		},
	}
}

func newSessionInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SESSION",
		Short: "Show session details and sprint calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Sessions.GetByID(ctx, sessionID)
			if err != nil {
				return err
			}
			sprints, err := app.Sessions.Sprints(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSessionInspect(session, sprints))
			return nil
		},
	}
}

func newSessionUpdateCmd(app *App) *cobra.Command {
	var name, start string
	var sprintCount, sprintLength int
	var ipSprint bool

	cmd := &cobra.Command{
		Use:   "update SESSION",
		Short: "Update a session still in draft or planning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !anyChanged(cmd.Flags(), "name", "start", "sprints", "sprint-days", "ip-sprint") {
				return fmt.Errorf("nothing to update: pass at least one flag")
			}

			var upd service.SessionUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("start") {
				upd.StartDate = &start
			}
			if cmd.Flags().Changed("sprints") {
				upd.SprintCount = &sprintCount
			}
			if cmd.Flags().Changed("sprint-days") {
				upd.SprintLengthDays = &sprintLength
			}
			if cmd.Flags().Changed("ip-sprint") {
				upd.IncludeIPSprint = &ipSprint
			}

			session, err := app.Sessions.Update(ctx, sessionID, upd)
			if err != nil {
				return err
			}

			fmt.Printf("Updated session %s\n", session.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Session name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&sprintCount, "sprints", 0, "Number of delivery sprints")
	cmd.Flags().IntVar(&sprintLength, "sprint-days", 0, "Sprint length in calendar days")
	cmd.Flags().BoolVar(&ipSprint, "ip-sprint", false, "Append a trailing innovation & planning sprint")

	return cmd
}

func newSessionStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status SESSION STATUS",
		Short: "Move a session to a new status (draft|planning|active|locked|completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !domain.ValidSessionStatuses[args[1]] {
				return fmt.Errorf("unknown status %q", args[1])
			}
			if err := app.Sessions.Transition(ctx, sessionID, domain.SessionStatus(args[1])); err != nil {
				return err
			}
			fmt.Printf("Session is now %s\n", args[1])
			return nil
		},
	}
}

func newSessionRegenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "regen SESSION",
		Short: "Regenerate the sprint calendar from session fields and holidays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.RegenerateCalendar(ctx, sessionID); err != nil {
				return err
			}
			fmt.Println("Regenerated sprint calendar")
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SESSION",
		Short: "Remove a session and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Delete(ctx, sessionID); err != nil {
				return err
			}
			fmt.Printf("Removed session %s\n", sessionID)
			return nil
		},
	}
}
