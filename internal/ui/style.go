package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1).
	Width(40).
	BorderForeground(lipgloss.Color("62"))

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Width(40).
	Align(lipgloss.Center).
	Foreground(lipgloss.Color("205"))

// PcTextStyle marks the next instruction in the source listing.
var PcTextStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

var headerStyle = lipgloss.NewStyle().Bold(true)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196"))
