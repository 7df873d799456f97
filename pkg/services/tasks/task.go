package tasks

import (
	"fmt"
	"strings"
)

// Task is a unit of work the harness can run.
type Task int

const (
	All Task = iota
	AnyTimeZoneToAnyOtherTimeZone
	EnumTimeZones
	AnyTimeZoneToUTC
	AnyTimeZoneToLocalTime
	EnumerateTimeZoneAdjustments
)

var taskNames = map[Task]string{
	All:                           "All",
	AnyTimeZoneToAnyOtherTimeZone: "AnyTimeZoneToAnyOtherTimeZone",
	EnumTimeZones:                 "EnumTimeZones",
	AnyTimeZoneToUTC:              "AnyTimeZoneToUTC",
	AnyTimeZoneToLocalTime:        "AnyTimeZoneToLocalTime",
	EnumerateTimeZoneAdjustments:  "EnumerateTimeZoneAdjustments",
}

func (t Task) String() string {
	if name, ok := taskNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

// Tasks lists every task in the order All runs them, All excluded.
func Tasks() []Task {
	return []Task{
		EnumTimeZones,
		AnyTimeZoneToAnyOtherTimeZone,
		AnyTimeZoneToUTC,
		AnyTimeZoneToLocalTime,
		EnumerateTimeZoneAdjustments,
	}
}

// ParseTask matches s against the task names, ignoring case. An empty
// string selects All.
func ParseTask(s string) (Task, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All, nil
	}
	for t, name := range taskNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return All, fmt.Errorf("%w: %s", ErrInvalidTask, s)
}

// OutputFormat controls how much the console runner prints besides reports.
type OutputFormat int

const (
	Verbose OutputFormat = iota
	Terse
	Quiet
)

func (f OutputFormat) String() string {
	switch f {
	case Verbose:
		return "verbose"
	case Terse:
		return "terse"
	case Quiet:
		return "quiet"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

// ParseOutputFormat accepts the format names and their first letters.
// "none" is a synonym of quiet.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v", "verbose":
		return Verbose, nil
	case "t", "terse":
		return Terse, nil
	case "q", "quiet", "n", "none":
		return Quiet, nil
	default:
		return Verbose, fmt.Errorf("invalid output format %q, expected verbose, terse or quiet", s)
	}
}
