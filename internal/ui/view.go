package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"scripture-tui/internal/focus"
	"scripture-tui/internal/schema"
	"scripture-tui/internal/theme"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(m.theme.Border)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.BorderActive)

	helpStyle := lipgloss.NewStyle().
		Foreground(m.theme.Muted)

	errorStyle := lipgloss.NewStyle().
		Foreground(m.theme.Error).
		Bold(true)

	var header, body string
	switch m.mode {
	case modeSearch:
		header = headerStyle.Render("Go to - Enter a reference") + "\n" + m.textInput.View()
		body = m.pane.vp.View()
	case modeVersionSelect:
		header = headerStyle.Render("Select Version")
		body = m.renderList(m.versionLines())
	case modeHistory:
		header = headerStyle.Render("Reading History")
		body = m.renderList(m.historyLines())
	default:
		title := fmt.Sprintf("%s %s %d", m.versionLabel(), m.book.Name, m.chapter)
		if id := m.focus.FocusedVerseID(); id != "" {
			title += fmt.Sprintf("  ◆ %s", strings.TrimPrefix(id, "v"))
		}
		header = headerStyle.Render(titleStyle.Render(title))
		body = m.pane.vp.View()
	}

	var help string
	switch {
	case m.loading:
		help = helpStyle.Render("Loading...")
	case m.mode == modeVersionSelect || m.mode == modeHistory:
		help = helpStyle.Render("j/k: move | enter: open | esc: back")
	default:
		help = helpStyle.Render("/: go to | v: version | h: history | t: theme | n: next | p: prev | esc: unfocus | q: quit")
	}

	var errorMsg string
	if m.err != nil {
		errorMsg = "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return fmt.Sprintf("%s\n%s\n%s%s", header, body, help, errorMsg)
}

func (m Model) versionLabel() string {
	for _, v := range m.versions {
		if v.ID == m.versionID {
			if v.Abbreviation != "" {
				return v.Abbreviation
			}
			return v.Name
		}
	}
	return fmt.Sprintf("#%d", m.versionID)
}

func (m Model) versionLines() []string {
	lines := make([]string, 0, len(m.versions))
	for _, v := range m.versions {
		line := v.Name
		if v.Abbreviation != "" {
			line = fmt.Sprintf("%-8s %s", v.Abbreviation, v.Name)
		}
		if v.ID == m.versionID {
			line += "  (current)"
		}
		lines = append(lines, line)
	}
	return lines
}

func (m Model) historyLines() []string {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, formatHistoryEntry(e))
	}
	return lines
}

func formatHistoryEntry(e schema.ChapterHistory) string {
	ref := fmt.Sprintf("%s %d", e.BookName, e.Chapter)
	if e.Verse != nil {
		ref += fmt.Sprintf(":%d", *e.Verse)
	}
	when := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s  %-24s %s", when, ref, e.VersionName)
}

func (m Model) renderList(lines []string) string {
	itemStyle := lipgloss.NewStyle().Foreground(m.theme.Primary)
	selectedStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	if len(lines) == 0 {
		if m.mode == modeHistory && m.entries == nil {
			return itemStyle.Render("  Loading...")
		}
		return itemStyle.Render("  Nothing here yet.")
	}

	var sb strings.Builder
	for i, line := range lines {
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString(itemStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatChapter renders the verses and returns the first line of each verse
// keyed by its anchor id. While a verse is focused, verses starting within
// the overlay are dimmed and the focused one is highlighted.
func formatChapter(verses []schema.Verse, th theme.Theme, width int, focused string, overlay int) (string, map[string]int) {
	numStyle := lipgloss.NewStyle().Foreground(th.Secondary).Width(4).Align(lipgloss.Right)
	textStyle := lipgloss.NewStyle().Foreground(th.Primary).Width(width)
	dimStyle := textStyle.Foreground(th.Dim)
	focusStyle := textStyle.Foreground(th.Focus).Background(th.FocusBg).Bold(true)

	anchors := make(map[string]int, len(verses))
	var sb strings.Builder
	line := 0

	for _, v := range verses {
		id := focus.VerseID(v.Number)
		style := textStyle
		switch {
		case id == focused:
			style = focusStyle
		case focused != "" && line < overlay:
			style = dimStyle
		}

		block := lipgloss.JoinHorizontal(lipgloss.Top,
			numStyle.Render(fmt.Sprintf("%d", v.Number)),
			"  ",
			style.Render(stripHTMLTags(v.Text)),
		)

		anchors[id] = line
		line += lipgloss.Height(block) + 1
		sb.WriteString(block)
		sb.WriteString("\n\n")
	}

	return sb.String(), anchors
}

func stripHTMLTags(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}
