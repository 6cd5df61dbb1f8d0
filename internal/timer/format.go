package timer

import "fmt"

// FormatTime renders seconds as zero-padded MM:SS. Minutes are not wrapped at
// 60, so 3661 becomes "61:01". Negative input renders as "00:00".
func FormatTime(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
