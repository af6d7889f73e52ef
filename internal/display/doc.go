// Package display implements the status screen of the unit.
//
// The screen is a fixed set of text lines. Each event kind rewrites the lines
// it owns; nothing else on the screen changes. View frames the lines for a
// terminal with lipgloss.
package display
