// Package availability defines the domain model for reservation calendar
// availability: the status values read off a calendar cell, the observation
// produced by a single check, and the trigger policies that decide when an
// observation becomes a notification.
package availability
