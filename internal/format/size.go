package format

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Size formats a byte count using the largest unit that keeps the value
// below 1024, e.g. "100.00 B" or "1.50 MB". Anything beyond terabytes is
// shown in PB.
func Size(n int64) string {
	size := float64(n)
	for _, unit := range sizeUnits {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f PB", size)
}

// Speed formats a rate in bytes per second as B/s, KB/s or MB/s.
func Speed(bytesPerSec float64) string {
	switch {
	case bytesPerSec < 1024:
		return fmt.Sprintf("%.2f B/s", bytesPerSec)
	case bytesPerSec < 1024*1024:
		return fmt.Sprintf("%.2f KB/s", bytesPerSec/1024)
	default:
		return fmt.Sprintf("%.2f MB/s", bytesPerSec/(1024*1024))
	}
}
