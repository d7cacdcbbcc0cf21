package views

import (
	"fmt"
	"time"
)

// FormatRelativeTime describes how long ago t was, relative to now.
// Future times read as "Just now".
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	secs := int(now.Sub(t) / time.Second)
	if secs < 10 {
		return "Just now"
	}
	if secs < 60 {
		return fmt.Sprintf("%ds ago", secs)
	}
	minutes := secs / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hr ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "Yesterday"
	}
	return fmt.Sprintf("%d days ago", days)
}
