package domain

import "time"

// DateLayout formats dates in conversion reports.
const DateLayout = "2006/01/02 15:04:05"

// ConversionFields are the report columns of a conversion case, in order.
var ConversionFields = []string{
	"DisplayCaseNumber",
	"Comment",
	"DisplayTestDate",
	"DisplayTestDateTimeZone",
	"DisplayOutputDate",
	"DisplayOutputDateTimeZone",
}

// ConversionCase is one edge case date and the result of converting it to
// another zone.
type ConversionCase struct {
	CaseNumber int
	Comment    string

	// RawTestDate is the date as written in the edge case file.
	RawTestDate  string
	TestDate     time.Time
	TestZoneName string

	// Skipped is set for dates that do not exist in the source zone.
	Skipped bool

	OutputDate     time.Time
	OutputZoneName string
}

func (c *ConversionCase) Field(name string) (any, bool) {
	switch name {
	case "DisplayCaseNumber":
		return c.CaseNumber, true
	case "Comment":
		return c.Comment, true
	case "DisplayTestDate":
		if c.Skipped {
			return c.RawTestDate, true
		}
		return formatDate(c.TestDate), true
	case "DisplayTestDateTimeZone":
		return c.TestZoneName, true
	case "DisplayOutputDate":
		return formatDate(c.OutputDate), true
	case "DisplayOutputDateTimeZone":
		return c.OutputZoneName, true
	default:
		return nil, false
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
