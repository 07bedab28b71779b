// Package ui holds the CLI's terminal rendering: lipgloss styles, a
// lightweight spinner, prompts, and the interactive picker.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — success, eligible
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — prompts, warnings
	ColorError     = lipgloss.Color("#FF4444") // red    — errors, paused
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — amounts
	ColorMeta      = lipgloss.Color("#555555") // dim gray  — labels, metadata
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue — UI chrome
	ColorTier      = lipgloss.Color("#9B5DE5") // purple    — tiers, spec ids
	ColorHighlight = lipgloss.Color("#F15BB5") // pink      — selected rows
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleTier    = lipgloss.NewStyle().Foreground(ColorTier).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorTier).
			Bold(true).
			MarginBottom(1)
)

// TierNames maps a tier to its display name, rarest first.
var TierNames = [4]string{"legendary", "epic", "rare", "common"}

// TierBadge renders a tier as a styled "tier (name)" badge.
func TierBadge(tier uint64) string {
	name := "?"
	if tier < uint64(len(TierNames)) {
		name = TierNames[tier]
	}
	return StyleTier.Render(name)
}
