package goEntitle

import "fmt"

// FormatClock renders a second count as HH:MM:SS for the pending-review
// countdown. Negative input clamps to zero; hours may exceed two digits.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
