package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Snapshot and restore plan versions",
	}

	cmd.AddCommand(
		newVersionSnapshotCmd(app),
		newVersionListCmd(app),
		newVersionRestoreCmd(app),
	)

	return cmd
}

func newVersionSnapshotCmd(app *App) *cobra.Command {
	var session, label, comment string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot the live assignment set into a new version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			v, err := app.Versions.Snapshot(ctx, sessionID, label, comment)
			if err != nil {
				return err
			}
			fmt.Printf("Created version %q (%d assignments)\n", v.Label, len(v.Assignments))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&label, "label", "", "Version label (e.g. v1)")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-text comment")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func newVersionListCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List versions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			versions, err := app.Versions.List(ctx, sessionID)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Println("No versions yet.")
				return nil
			}
			s, err := app.Sessions.GetByID(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatVersionList(versions, s.CurrentVersion))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

// resolveVersionID resolves a version reference within a session: exact
// label (case-insensitive), full UUID, or UUID prefix.
func resolveVersionID(ctx context.Context, app *App, sessionID, input string) (string, error) {
	versions, err := app.Versions.List(ctx, sessionID)
	if err != nil {
		return "", err
	}

	for _, v := range versions {
		if strings.EqualFold(v.Label, input) {
			return v.ID, nil
		}
	}
	for _, v := range versions {
		if v.ID == input {
			return v.ID, nil
		}
	}

	var matches []string
	for _, v := range versions {
		if strings.HasPrefix(v.ID, input) {
			matches = append(matches, v.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("version not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("version ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newVersionRestoreCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "restore VERSION",
		Short: "Replace the live assignment set with a snapshot",
		Long: "Restore replaces the live assignments with the snapshot's contents.\n" +
			"The pre-restore state is not saved automatically; snapshot first if you\n" +
			"want to return to it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}
			versionID, err := resolveVersionID(ctx, app, sessionID, args[0])
			if err != nil {
				return err
			}
			if err := app.Versions.Restore(ctx, sessionID, versionID); err != nil {
				return err
			}
			fmt.Printf("Restored version %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
