package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piplan-io/piplan/internal/domain"
)

// StatusStyle returns the style used to render a session status.
func StatusStyle(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.SessionDraft:
		return StyleDim
	case domain.SessionPlanning:
		return StyleBlue
	case domain.SessionActive:
		return StyleGreen
	case domain.SessionLocked:
		return StyleYellow
	case domain.SessionCompleted:
		return StylePurple
	default:
		return StyleFg
	}
}

// FormatSessionList renders the session list table.
func FormatSessionList(sessions []*domain.Session) string {
	headers := []string{"ID", "NAME", "STATUS", "START", "SPRINTS", "IP"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		ip := ""
		if s.IncludeIPSprint {
			ip = "yes"
		}
		rows = append(rows, []string{
			Dim(shortID(s.ID)),
			s.Name,
			StatusStyle(s.Status).Render(string(s.Status)),
			s.StartDate.Format("2006-01-02"),
			fmt.Sprintf("%d×%dd", s.SprintCount, s.SprintLengthDays),
			ip,
		})
	}
	return RenderTable(headers, rows)
}

// FormatSessionInspect renders one session with its sprint calendar.
func FormatSessionInspect(s *domain.Session, sprints []*domain.Sprint) string {
	var b strings.Builder

	b.WriteString(Header(s.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), s.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), StatusStyle(s.Status).Render(string(s.Status))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Start:"), s.StartDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%s %d sprints × %d days\n", Dim("Calendar:"), s.SprintCount, s.SprintLengthDays))
	if s.IncludeIPSprint {
		b.WriteString(fmt.Sprintf("%s trailing IP sprint\n", Dim("IP:")))
	}
	if s.CurrentVersion != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Version:"), shortID(s.CurrentVersion)))
	}

	if len(sprints) > 0 {
		b.WriteString("\n")
		headers := []string{"#", "START", "END", "TYPE"}
		rows := make([][]string, 0, len(sprints))
		for _, sp := range sprints {
			kind := "delivery"
			if sp.IsIPSprint {
				kind = StylePurple.Render("IP")
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", sp.Num),
				sp.StartDate.Format("2006-01-02"),
				sp.EndDate.Format("2006-01-02"),
				kind,
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	return b.String()
}

// FormatTeamList renders the team list table for one session.
func FormatTeamList(teams []*domain.Team) string {
	headers := []string{"ID", "NAME", "BOARD", "VELOCITY", "ADJ%", "OVERRIDES"}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		overrides := ""
		if len(t.SprintOverrides) > 0 {
			overrides = fmt.Sprintf("%d", len(t.SprintOverrides))
		}
		rows = append(rows, []string{
			Dim(shortID(t.ID)),
			t.Name,
			t.BoardID,
			fmt.Sprintf("%d", t.Velocity),
			fmt.Sprintf("%d", t.AdjustmentPct),
			overrides,
		})
	}
	return RenderTable(headers, rows)
}

// FormatFeatureList renders the backlog table for one session.
func FormatFeatureList(features []*domain.Feature) string {
	headers := []string{"KEY", "TITLE", "PTS", "SPRINTS", "BLOCKED BY"}
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		blockedBy := strings.Join(f.BlockedBy(), ", ")
		rows = append(rows, []string{
			StyleBlue.Render(f.Key),
			truncate(f.Title, 48),
			fmt.Sprintf("%d", f.Points),
			fmt.Sprintf("%d", f.EstimatedSprints),
			Dim(blockedBy),
		})
	}
	return RenderTable(headers, rows)
}

// FormatVersionList renders the plan version table, newest first.
func FormatVersionList(versions []*domain.PlanVersion, currentID string) string {
	headers := []string{"ID", "LABEL", "ASSIGNMENTS", "CREATED", ""}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		marker := ""
		if v.ID == currentID {
			marker = StyleGreen.Render("● current")
		}
		rows = append(rows, []string{
			Dim(shortID(v.ID)),
			v.Label,
			fmt.Sprintf("%d", len(v.Assignments)),
			v.CreatedAt.Format("2006-01-02 15:04"),
			marker,
		})
	}
	return RenderTable(headers, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
