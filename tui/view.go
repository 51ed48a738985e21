// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielhkuo/purpose-swipe/deck"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

const (
	cardWidth = 44

	// indicatorPx is how far a card must move before the direction hint shows.
	indicatorPx = 40.0

	topResults = 3
)

func (m Model) View() string {
	width := m.termWidth()
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	header := center(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Purpose"),
		subtitleStyle.Render("Discover what resonates with your values and goals"),
	))

	var body string
	switch {
	case m.showHelp:
		body = center(m.help.View(m.keys))
	case m.phase == phaseLoading:
		body = center(m.spinner.View() + " Loading purpose cards...")
	case m.phase == phaseFailed:
		body = center(leftStyle.Render("Could not load purpose cards: ") + mutedStyle.Render(m.err.Error()))
	case m.phase == phaseResults:
		body = center(m.renderResults(m.ctl.State()))
	default:
		body = m.renderDeck(center)
	}

	parts := []string{header, "", body, ""}
	if status := m.renderStatus(); status != "" {
		parts = append(parts, center(status))
	}
	if !m.showHelp {
		parts = append(parts, center(m.help.ShortHelpView(m.keys.ShortHelp())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderDeck(center func(string) string) string {
	st := m.ctl.State()
	if st.Total == 0 {
		return center(mutedStyle.Render("No purpose cards available."))
	}
	if m.shown >= st.Total {
		return ""
	}

	card := m.ctl.Cards()[m.shown]
	x := m.motion.X.Pos

	var hint string
	switch {
	case x <= -indicatorPx:
		hint = leftStyle.Render("✕ not for me")
	case x >= indicatorPx:
		hint = rightStyle.Render("resonates ♥")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		center(renderProgress(m.shown, st.Total)),
		"",
		center(hint),
		m.placeCard(renderCard(card, m.motion.Scale.Pos > 1.05)),
		"",
		center(leftStyle.Render("✕ ←")+"      "+rightStyle.Render("→ ♥")),
	)
}

// placeCard offsets the card horizontally by the animated X position.
func (m Model) placeCard(card string) string {
	width := m.termWidth()
	w := lipgloss.Width(card)
	left := (width-w)/2 + int(math.Round(m.motion.X.Pos/cellWidth))
	if left+w <= 0 || left >= width {
		return ""
	}
	if left < 0 {
		left = 0
	}
	if left+w > width {
		left = width - w
	}
	if left < 0 {
		left = 0
	}
	return lipgloss.NewStyle().PaddingLeft(left).Render(card)
}

func renderCard(card models.PurposeCard, held bool) string {
	style := cardStyle
	if held {
		style = cardHeldStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		imageStyle.Render(card.Image),
		"",
		cardTitleStyle.Render(card.Title),
		"",
		card.Description,
		"",
		categoryStyle.Render(card.Category),
	)
	return style.Render(content)
}

func renderProgress(current, total int) string {
	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i < current:
			b.WriteString(dotDone)
		case i == current:
			b.WriteString(dotCurrent)
		default:
			b.WriteString(dotAhead)
		}
		b.WriteByte(' ')
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d of %d", current+1, total)))
	return b.String()
}

func (m Model) renderResults(st deck.State) string {
	lines := []string{
		hotStyle.Render("★ Your Purpose Discovered"),
		"",
		mutedStyle.Render(fmt.Sprintf("Based on your %d selections, here are your top resonating purposes:", st.Results.Total())),
		"",
	}

	top := st.Results.Top(topResults)
	if len(top) == 0 {
		lines = append(lines, mutedStyle.Render("You didn't select any purposes that resonated with you. Try exploring again!"))
	}
	for i, e := range top {
		lines = append(lines, renderEntry(i, e), "")
	}

	lines = append(lines, "", mutedStyle.Render("r explore again · q quit"))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderEntry(rank int, e tally.Entry) string {
	noun := "selections"
	if e.Count == 1 {
		noun = "selection"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("#%d %s", rank+1, e.Category)),
		rightStyle.Render("♥ ")+mutedStyle.Render(fmt.Sprintf("%d %s", e.Count, noun))+"  "+barStyle.Render(strings.Repeat("▮", e.Count)),
	)
}

func (m Model) renderStatus() string {
	if m.ctl == nil {
		return ""
	}
	st := m.ctl.State()
	if st.SessionID == "" {
		return m.spinner.View() + mutedStyle.Render(" starting session")
	}
	status := mutedStyle.Render("session " + shortID(st.SessionID))
	if st.ServerResults != nil {
		status += "  " + rightStyle.Render("✓ saved")
	}
	return status
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
