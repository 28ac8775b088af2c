package premiere

import (
	"fmt"
	"strconv"

	"prproj/internal/element"
)

// TicksPerSecond is the fixed time base of the project format.
const TicksPerSecond int64 = 254_016_000_000

// Seconds converts a tick count to seconds.
func Seconds(ticks int64) float64 {
	return float64(ticks) / float64(TicksPerSecond)
}

func parseTicks(elem *element.Element) (int64, error) {
	text := elem.TrimmedText()
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", elem.Name, text, err)
	}
	return value, nil
}

// parseTicksLenient tolerates missing stream metadata by reporting 0.
func parseTicksLenient(elem *element.Element) int64 {
	value, err := strconv.ParseInt(elem.TrimmedText(), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
