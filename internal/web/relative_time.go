package web

import (
	"fmt"
	"time"
)

// relativeTime renders how long ago a notification was created. Zero and
// future timestamps read as just now.
func relativeTime(now, createdAt time.Time) string {
	if createdAt.IsZero() {
		return "just now"
	}
	delta := now.Sub(createdAt)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		minutes := int(delta / time.Minute)
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	if delta < 24*time.Hour {
		hours := int(delta / time.Hour)
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(delta / (24 * time.Hour))
	if days <= 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
