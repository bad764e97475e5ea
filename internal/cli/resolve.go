package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// anyChanged reports whether the user set at least one of the named flags.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// resolveSessionID resolves a session reference which can be an exact
// name (case-insensitive), a full UUID, or a UUID prefix.
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("session is required")
	}

	sessions, err := app.Sessions.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range sessions {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}
	for _, s := range sessions {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTeamID resolves a team reference within a session: exact name
// (case-insensitive), board ID, full UUID, or UUID prefix.
func resolveTeamID(ctx context.Context, app *App, sessionID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("team is required")
	}

	teams, err := app.Teams.ListBySession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	for _, t := range teams {
		if strings.EqualFold(t.Name, input) || strings.EqualFold(t.BoardID, input) {
			return t.ID, nil
		}
	}
	for _, t := range teams {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range teams {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("team not found in session: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("team ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
