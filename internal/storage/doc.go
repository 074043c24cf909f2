// Package storage persists the single last-observed availability status
// between runs, either in a one-line local file or in a private GitHub gist
// for runners whose workspace does not survive the run. It also writes the
// debug artifacts (matched cell HTML, page screenshot) each run leaves behind.
package storage
