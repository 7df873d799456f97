package report

import "fmt"

// Stage tracks how far a report got, so failures can say where they happened.
type Stage int

const (
	StageIdle Stage = iota
	StageOpening
	StageWritingHeader
	StageWritingGuide
	StageWritingDetail
	StageClosing
	StageAborted
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageOpening:
		return "opening"
	case StageWritingHeader:
		return "writing label row"
	case StageWritingGuide:
		return "writing guide row"
	case StageWritingDetail:
		return "writing details"
	case StageClosing:
		return "closing"
	case StageAborted:
		return "aborting"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
