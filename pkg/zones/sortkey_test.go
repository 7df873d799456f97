package zones

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortKey(t *testing.T) {
	tests := []struct {
		offset int
		id     string
		want   string
	}{
		{-720, "Etc/GMT+12", "N000Etc/GMT+12"},
		{-420, "America/Denver", "N300America/Denver"},
		{-1, "X", "N719X"},
		{0, "UTC", "P000UTC"},
		{330, "Asia/Kolkata", "P330Asia/Kolkata"},
		{840, "Pacific/Kiritimati", "P840Pacific/Kiritimati"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SortKey(tt.offset, tt.id))
		})
	}
}

func TestSortKey_OrderFollowsOffset(t *testing.T) {
	offsets := []int{-720, -60, 0, 60, 720}
	for i := 1; i < len(offsets); i++ {
		prev := SortKey(offsets[i-1], "Same")
		next := SortKey(offsets[i], "Same")
		assert.Less(t, prev, next, "offset %d must sort before %d", offsets[i-1], offsets[i])
	}

	// a lower offset wins regardless of the id
	assert.Less(t, SortKey(-60, "Zulu"), SortKey(60, "Alpha"))
}

func TestSortKey_TieBreakByID(t *testing.T) {
	assert.Greater(t, SortKey(0, "Zebra"), SortKey(0, "Alpha"))
	assert.Greater(t, SortKey(-300, "Zebra"), SortKey(-300, "Alpha"))
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+00:00", FormatOffset(0))
	assert.Equal(t, "-07:00", FormatOffset(-7*time.Hour))
	assert.Equal(t, "+05:45", FormatOffset(5*time.Hour+45*time.Minute))
	assert.Equal(t, "-03:30", FormatOffset(-(3*time.Hour + 30*time.Minute)))
}
