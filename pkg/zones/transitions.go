package zones

import "time"

// Field names exposed by Transition to the report engine.
const (
	FieldAt           = "At"
	FieldOffsetBefore = "OffsetBefore"
	FieldOffsetAfter  = "OffsetAfter"
	FieldNameBefore   = "NameBefore"
	FieldNameAfter    = "NameAfter"
	FieldDelta        = "Delta"
	FieldDaylight     = "Daylight"
)

// TransitionLayout formats transition instants in reports.
const TransitionLayout = "2006-01-02 15:04:05 MST"

// Transition is a change of offset or abbreviation in a zone.
type Transition struct {
	// At is the first instant of the new offset, in the zone's location.
	At time.Time

	OffsetBefore time.Duration
	OffsetAfter  time.Duration
	NameBefore   string
	NameAfter    string
	Daylight     bool
}

// Delta is how far clocks move at the transition.
func (t Transition) Delta() time.Duration {
	return t.OffsetAfter - t.OffsetBefore
}

func (t Transition) Field(name string) (any, bool) {
	switch name {
	case FieldAt:
		return t.At.Format(TransitionLayout), true
	case FieldOffsetBefore:
		return FormatOffset(t.OffsetBefore), true
	case FieldOffsetAfter:
		return FormatOffset(t.OffsetAfter), true
	case FieldNameBefore:
		return t.NameBefore, true
	case FieldNameAfter:
		return t.NameAfter, true
	case FieldDelta:
		return FormatOffset(t.Delta()), true
	case FieldDaylight:
		return t.Daylight, true
	default:
		return nil, false
	}
}

// Transitions lists the transitions of loc in [from, to).
func Transitions(loc *time.Location, from, to time.Time) []Transition {
	var out []Transition

	t := from.In(loc)
	for {
		_, end := t.ZoneBounds()
		if end.IsZero() || !end.Before(to) {
			break
		}

		nameBefore, offsetBefore := t.Zone()
		nameAfter, offsetAfter := end.Zone()
		if nameBefore != nameAfter || offsetBefore != offsetAfter || t.IsDST() != end.IsDST() {
			out = append(out, Transition{
				At:           end,
				OffsetBefore: time.Duration(offsetBefore) * time.Second,
				OffsetAfter:  time.Duration(offsetAfter) * time.Second,
				NameBefore:   nameBefore,
				NameAfter:    nameAfter,
				Daylight:     end.IsDST(),
			})
		}
		t = end
	}
	return out
}

// YearTransitions lists the transitions of loc during the given years.
func YearTransitions(loc *time.Location, year, years int) []Transition {
	if years < 1 {
		years = 1
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := time.Date(year+years, time.January, 1, 0, 0, 0, 0, loc)
	return Transitions(loc, from, to)
}
