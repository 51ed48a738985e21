// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run plays until the user quits, then waits for pending persistence to
// finish or time out.
func Run(cfg Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	final, err := tea.NewProgram(New(cfg), opts...).Run()
	if m, ok := final.(Model); ok && m.ctl != nil {
		m.ctl.Wait()
	}
	return err
}
