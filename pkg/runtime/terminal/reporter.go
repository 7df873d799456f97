package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/tzlab/pkg/models/domain"
)

const sheetTemplate = `
Zone:            {{.ID}}
Display name:    {{.DisplayName}}
Standard name:   {{.StandardName}} ({{.StandardAbbr}})
Daylight name:   {{.DaylightName}} ({{.DaylightAbbr}})
Base UTC offset: {{.BaseOffset}}
Supports DST:    {{if .SupportsDST}}yes{{else}}no{{end}}
Sort key:        {{.SortKey}}

At {{.At.Format "2006-01-02 15:04:05 MST"}}: {{.CurrentName}}{{if .IsDST}} (daylight saving time){{end}}
`

var sheet = template.Must(template.New("zone").Parse(sheetTemplate))

// Reporter outputs zone property sheets to the console
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(zone *domain.ZoneSheet) error {
	if err := sheet.Execute(c.writer, zone); err != nil {
		return fmt.Errorf("failed to render zone %s: %w", zone.ID, err)
	}
	return nil
}
