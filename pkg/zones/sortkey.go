package zones

import (
	"fmt"
	"time"
)

// MaxBias is the largest westward offset, in minutes, a key can encode.
const MaxBias = 720

// SortKey builds a key whose string order runs from the westmost offset to
// the eastmost one, then by id for equal offsets. Offsets must lie within
// [-MaxBias, 999] minutes.
func SortKey(offsetMinutes int, id string) string {
	if offsetMinutes < 0 {
		return fmt.Sprintf("N%03d%s", MaxBias+offsetMinutes, id)
	}
	return fmt.Sprintf("P%03d%s", offsetMinutes, id)
}

// FormatOffset renders d as "+hh:mm" or "-hh:mm".
func FormatOffset(d time.Duration) string {
	sign := '+'
	if d < 0 {
		sign = '-'
		d = -d
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}
