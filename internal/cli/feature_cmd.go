package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/piplan-io/piplan/internal/tracker"
	"github.com/spf13/cobra"
)

func newFeatureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage the session backlog",
	}

	cmd.AddCommand(
		newFeatureImportCmd(app),
		newFeatureListCmd(app),
		newFeatureInspectCmd(app),
		newFeatureRemoveCmd(app),
	)

	return cmd
}

func newFeatureImportCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a tracker feed (teams and features) into a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}

			feed, err := tracker.LoadFeed(args[0])
			if err != nil {
				return err
			}

			result, err := app.Features.ImportFeed(ctx, sessionID, feed)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d teams, %d features (%d updated), %d dependencies\n",
				result.TeamCount, result.FeatureCount, result.UpdatedCount, result.DependencyCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newFeatureListCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the session backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			features, err := app.Features.ListBySession(ctx, sessionID)
			if err != nil {
				return err
			}
			if len(features) == 0 {
				fmt.Println("Backlog is empty.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatFeatureList(features))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newFeatureInspectCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "inspect KEY",
		Short: "Show one feature's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			f, err := app.Features.GetByKey(ctx, sessionID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header(f.Key))
			fmt.Printf("%s %s\n", formatter.Dim("Title:"), f.Title)
			fmt.Printf("%s %d\n", formatter.Dim("Points:"), f.Points)
			fmt.Printf("%s %d\n", formatter.Dim("Estimated sprints:"), f.EstimatedSprints)
			if f.ExternalKey != "" {
				fmt.Printf("%s %s\n", formatter.Dim("External key:"), f.ExternalKey)
			}
			if len(f.Dependencies) > 0 {
				var deps []string
				for _, d := range f.Dependencies {
					deps = append(deps, fmt.Sprintf("%s (%s)", d.TargetFeatureKey, d.Kind))
				}
				fmt.Printf("%s %s\n", formatter.Dim("Dependencies:"), strings.Join(deps, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newFeatureRemoveCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "remove KEY",
		Short: "Remove a feature and its assignment from the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			if err := app.Features.Remove(ctx, sessionID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed feature %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
