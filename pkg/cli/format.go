package cli

import (
	"fmt"
	"time"
)

// FormatBytes formats bytes to human readable string
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatBytesInt formats bytes (int) to human readable string
func FormatBytesInt(bytes int) string {
	return FormatBytes(int64(bytes))
}

// FormatUnixDate formats a Unix timestamp for display
func FormatUnixDate(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04:05")
}

// FormatQuota formats a character usage against its limit, e.g. "1.2k/10k"
func FormatQuota(used, limit int64) string {
	return fmt.Sprintf("%s/%s", formatCount(used), formatCount(limit))
}

func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
