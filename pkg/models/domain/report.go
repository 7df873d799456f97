package domain

// Report is a fixed-width report ready to be rendered: one column per
// field, one row per record.
type Report struct {
	Title    string
	Fields   []string
	Labels   []string // optional, parallel to Fields
	Records  []any
	FileName string // empty means the console
	Guide    rune
}

// NewReport collects records into a Report.
func NewReport[T any](title string, fields []string, records []T) *Report {
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = r
	}
	return &Report{
		Title:   title,
		Fields:  fields,
		Records: rows,
	}
}
