package main

import "github.com/charmbracelet/lipgloss"

var (
	acceptedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")). // Teal
			Bold(true)

	rejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")) // Gray

	suppressedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D")) // Yellow

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")). // Red
			MarginBottom(1)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3")) // Light teal
)
