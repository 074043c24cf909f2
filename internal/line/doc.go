// Package line is a minimal LINE Messaging API client covering the three
// delivery modes this tool uses: push to a single user or group, broadcast to
// all followers, and multicast to a list of user IDs. It also formats
// availability observations as text messages and flex-bubble cards.
package line
