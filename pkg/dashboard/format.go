package dashboard

import (
	"fmt"
	"math"
	"strconv"
)

// FormatHaltingHours renders halting hours the way the halt badge shows them:
// "7h", "11.9h", or "2d 5h" once a full day has passed.
func FormatHaltingHours(hours float64) string {
	days := int(math.Floor(hours / 24))

	if days > 0 {
		remaining := hours - float64(days)*24
		return fmt.Sprintf("%dd %sh", days, formatHours(remaining))
	}

	return fmt.Sprintf("%sh", formatHours(hours))
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
