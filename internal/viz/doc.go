// Package viz renders runs for the terminal: styled summaries with lipgloss
// and line plots of paths, field and spectra with asciigraph.
package viz
