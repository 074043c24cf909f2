// Package notifier decides how an availability observation leaves the
// process: pushed through the LINE Messaging API in one of its delivery
// modes, or printed in dry-run mode. Whether to notify at all is the trigger
// policy's call (see the availability package); this package only delivers.
package notifier
