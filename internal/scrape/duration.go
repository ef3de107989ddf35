package scrape

import (
	"math"
	"strconv"
	"strings"
)

// unknownDuration sorts placeholder or unparseable online durations last.
const unknownDuration = math.MaxInt64

// durationSeconds interprets an online-duration string as HH:MM:SS or
// MM:SS.
func durationSeconds(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" || value == Unknown || value == "---" {
		return unknownDuration
	}
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return unknownDuration
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || n < 0 {
			return unknownDuration
		}
		total = total*60 + n
	}
	return total
}
