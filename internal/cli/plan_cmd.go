package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/piplan-io/piplan/internal/contract"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "AI-assisted planning: preview and apply candidate plans",
	}

	cmd.AddCommand(
		newPlanPreviewCmd(app),
		newPlanApplyCmd(app),
	)

	return cmd
}

func proposeFlags(cmd *cobra.Command, opts *contract.ProposeOptions) {
	cmd.Flags().BoolVar(&opts.RespectDependencies, "respect-deps", true, "Honor dependency ordering")
	cmd.Flags().BoolVar(&opts.BalanceLoad, "balance", true, "Balance load across teams")
	cmd.Flags().BoolVar(&opts.PreferEarlierSprints, "front-load", true, "Prefer earlier sprints")
}

// loadCandidates reads a candidate plan from a JSON file, as written by
// "plan preview --out".
func loadCandidates(path string) ([]contract.ProposedAssignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate file: %w", err)
	}
	var candidates []contract.ProposedAssignment
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parsing candidate file: %w", err)
	}
	return candidates, nil
}

func newPlanPreviewCmd(app *App) *cobra.Command {
	var session, out string
	var opts contract.ProposeOptions

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Ask the AI proposer for a plan and show the dry-run diff",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}

			preview, err := app.Reconcile.Preview(ctx, sessionID, opts)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header("Proposed plan"))
			fmt.Printf("%s", formatter.FormatReconcileResult(preview.Reconcile))

			if out != "" {
				data, err := json.MarshalIndent(preview.Candidates, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0644); err != nil {
					return fmt.Errorf("writing candidate file: %w", err)
				}
				fmt.Printf("\nWrote %d candidates to %s\n", len(preview.Candidates), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&out, "out", "", "Write the raw candidate plan to a JSON file")
	proposeFlags(cmd, &opts)
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newPlanApplyCmd(app *App) *cobra.Command {
	var session, from string
	var opts contract.ProposeOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a candidate plan, re-validated against fresh state",
		Long: "Apply commits the accepted subset of a candidate plan in one transaction.\n" +
			"With --from it applies a previously saved candidate file; without it a fresh\n" +
			"proposal is requested from the AI proposer first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessionID, err := resolveSessionID(ctx, app, session)
			if err != nil {
				return err
			}

			var candidates []contract.ProposedAssignment
			if from != "" {
				candidates, err = loadCandidates(from)
				if err != nil {
					return err
				}
			} else {
				preview, err := app.Reconcile.Preview(ctx, sessionID, opts)
				if err != nil {
					return err
				}
				candidates = preview.Candidates
			}

			result, err := app.Reconcile.Apply(ctx, sessionID, candidates, opts)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header("Applied plan"))
			fmt.Printf("%s", formatter.FormatReconcileResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session name or ID")
	cmd.Flags().StringVar(&from, "from", "", "Candidate plan JSON file from a previous preview")
	proposeFlags(cmd, &opts)
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
