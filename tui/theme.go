// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBase     = lipgloss.Color("#1e1e2e")
	colorSurface  = lipgloss.Color("#45475a")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorLavender = lipgloss.Color("#b4befe")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorRed      = lipgloss.Color("#f38ba8")
	colorPeach    = lipgloss.Color("#fab387")

	titleStyle    = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorSubtext)
	hotStyle      = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Foreground(colorText).
			Padding(1, 2).
			Width(cardWidth)

	cardHeldStyle = cardStyle.BorderForeground(colorLavender)

	cardTitleStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	imageStyle     = lipgloss.NewStyle().Foreground(colorSubtext).Italic(true)
	categoryStyle  = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorLavender).
			Padding(0, 1)

	leftStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	rightStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)

	dotDone    = lipgloss.NewStyle().Foreground(colorLavender).Render("●")
	dotCurrent = lipgloss.NewStyle().Foreground(colorPeach).Render("●")
	dotAhead   = lipgloss.NewStyle().Foreground(colorSurface).Render("○")

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorLavender).
			Padding(1, 2).
			Width(cardWidth + 8)

	barStyle = lipgloss.NewStyle().Foreground(colorLavender)
)
