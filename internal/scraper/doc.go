// Package scraper locates and classifies one availability cell in the
// reservation calendar page.
//
// The primary path works on the calendar <table>: it picks the candidate
// table with the most date-like header cells, resolves the header column for
// the watched date label and the row for the watched category, then reads the
// cell through a chain of text-extraction fallbacks. A secondary path handles
// layouts without a table by scanning date-labeled elements for availability
// icons. Every failure mode degrades to Unknown; detection never aborts a run.
package scraper
