package zones

import (
	"fmt"
	"time"
)

// Field names exposed by Zone to the report engine.
const (
	FieldSortKey      = "SortKey"
	FieldID           = "ID"
	FieldDisplayName  = "DisplayName"
	FieldBaseOffset   = "BaseOffset"
	FieldStandardName = "StandardName"
	FieldStandardAbbr = "StandardAbbr"
	FieldDaylightName = "DaylightName"
	FieldDaylightAbbr = "DaylightAbbr"
	FieldSupportsDST  = "SupportsDST"
)

// Zone describes a time zone the way it appears in zone listings.
type Zone struct {
	ID       string
	Location *time.Location

	DisplayName  string
	StandardName string
	DaylightName string
	StandardAbbr string
	DaylightAbbr string

	// BaseOffset is the standard time offset east of UTC.
	BaseOffset  time.Duration
	SupportsDST bool
}

// NewZone describes loc as it behaves during year. Names come from catalog
// when it has an entry for the zone; otherwise the tz abbreviations are used.
func NewZone(loc *time.Location, catalog Catalog, year int) *Zone {
	jan := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC).In(loc)
	jul := time.Date(year, time.July, 1, 12, 0, 0, 0, time.UTC).In(loc)

	std, dst := jan, jul
	if jan.IsDST() {
		std, dst = jul, jan
	}
	stdAbbr, stdOffset := std.Zone()
	dstAbbr, _ := dst.Zone()

	z := &Zone{
		ID:          loc.String(),
		Location:    loc,
		BaseOffset:  time.Duration(stdOffset) * time.Second,
		SupportsDST: jan.IsDST() || jul.IsDST(),
	}
	if !z.SupportsDST {
		dstAbbr = stdAbbr
	}

	var names Names
	var found bool
	if catalog != nil {
		names, found = catalog.Lookup(z.ID)
	}
	if found {
		z.DisplayName = names.Display
		z.StandardName = names.Standard
		z.DaylightName = names.Daylight
		z.StandardAbbr = Abbreviate(names.Standard)
		z.DaylightAbbr = Abbreviate(names.Daylight)
		return z
	}

	z.DisplayName = fmt.Sprintf("(UTC%s) %s", FormatOffset(z.BaseOffset), z.ID)
	z.StandardName = stdAbbr
	z.DaylightName = dstAbbr
	z.StandardAbbr = stdAbbr
	z.DaylightAbbr = dstAbbr
	return z
}

func (z *Zone) BaseOffsetMinutes() int {
	return int(z.BaseOffset / time.Minute)
}

func (z *Zone) SortKey() string {
	return SortKey(z.BaseOffsetMinutes(), z.ID)
}

func (z *Zone) AbbreviatedDisplayName() string {
	return Abbreviate(z.DisplayName)
}

func (z *Zone) AbbreviatedStandardName() string {
	return z.StandardAbbr
}

func (z *Zone) AbbreviatedDaylightName() string {
	return z.DaylightAbbr
}

// IsDaylightSavingTime reports whether daylight saving time is in effect
// in this zone at t.
func (z *Zone) IsDaylightSavingTime(t time.Time) bool {
	return t.In(z.Location).IsDST()
}

// NameAt returns the daylight name when daylight saving time is in effect
// at t and the standard name otherwise. The zero time has no name.
func (z *Zone) NameAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if z.IsDaylightSavingTime(t) {
		return z.DaylightName
	}
	return z.StandardName
}

// AbbreviationAt is the abbreviated form of NameAt.
func (z *Zone) AbbreviationAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if z.IsDaylightSavingTime(t) {
		return z.DaylightAbbr
	}
	return z.StandardAbbr
}

func (z *Zone) Field(name string) (any, bool) {
	switch name {
	case FieldSortKey:
		return z.SortKey(), true
	case FieldID:
		return z.ID, true
	case FieldDisplayName:
		return z.DisplayName, true
	case FieldBaseOffset:
		return FormatOffset(z.BaseOffset), true
	case FieldStandardName:
		return z.StandardName, true
	case FieldStandardAbbr:
		return z.StandardAbbr, true
	case FieldDaylightName:
		return z.DaylightName, true
	case FieldDaylightAbbr:
		return z.DaylightAbbr, true
	case FieldSupportsDST:
		return z.SupportsDST, true
	default:
		return nil, false
	}
}
