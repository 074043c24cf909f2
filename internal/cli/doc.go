// Package cli implements the command-line interface for fumo-watch.
//
// The cli package provides the Cobra-based CLI that performs one check of the
// Fumotoppara reservation calendar: load configuration, fetch and classify
// the watched cell, decide whether to notify, deliver via LINE, and persist
// the observed status for the next run. Exit codes distinguish success (0),
// runtime failures (1), a missing LINE credential (2), and a missing
// recipient for the selected send mode (3).
package cli
