package ui

import (
	"fmt"
	"strings"

	"github.com/Varun5711/carmate/internal/errlog"
	"github.com/charmbracelet/lipgloss"
)

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// errorPanel is the developer footer: the newest entries of the session's
// error log, empty when nothing has failed.
func errorPanel(log *errlog.Log) string {
	entries := log.Recent()
	if len(entries) == 0 {
		return ""
	}

	lines := []string{
		PanelTitleStyle.Render(fmt.Sprintf("🐞 Recent errors (%d of %d)", len(entries), log.Len())) +
			InfoStyle.Render("  ctrl+e clear"),
	}
	for _, e := range entries {
		line := PanelTimeStyle.Render("["+e.Time+"] ") + ErrorStyle.Render(e.Title)
		if details := strings.TrimSpace(firstLine(e.Details)); details != "" {
			line += InfoStyle.Render(": " + truncate(details, 48))
		}
		lines = append(lines, line)
	}
	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
