package calc

// FileSizeMB converts a megabit-per-second rate held for seconds into
// megabytes.
func FileSizeMB(mbps float64, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return mbps * float64(seconds) / 8
}

// DecimalGB converts megabytes to decimal gigabytes (MB/1000).
func DecimalGB(mb float64) float64 {
	return mb / 1000
}

// DecimalTB converts megabytes to decimal terabytes (GB/1000).
func DecimalTB(mb float64) float64 {
	return DecimalGB(mb) / 1000
}

// RatePerMinuteMB is the storage consumed per minute of footage.
func RatePerMinuteMB(mbps float64) float64 {
	return mbps * 60 / 8
}

// RatePerHourMB is the storage consumed per hour of footage.
func RatePerHourMB(mbps float64) float64 {
	return mbps * 3600 / 8
}

// SecondsForSize returns how many whole seconds of footage at mbps fit in
// mb megabytes. It is the inverse of FileSizeMB, rounded down.
func SecondsForSize(mb, mbps float64) int {
	if mbps <= 0 || mb <= 0 {
		return 0
	}
	return int(mb * 8 / mbps)
}
