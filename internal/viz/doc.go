// Package viz holds the terminal look of phasesync: colour themes, lipgloss
// styles and the run summary printed after a simulation.
//
// Themes are selected by name with [GetTheme]; unknown names fall back to
// the default theme. [Summary] renders a finished report as three panels:
// run parameters, synchronization figures and a per-unit table with
// sparklines of each unit's phase over time.
package viz
