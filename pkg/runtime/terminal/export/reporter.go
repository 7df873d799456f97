package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/de-tools/tzlab/pkg/report"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

type TableConfig struct {
	// Encoding applies to report files only; nil writes UTF-8.
	Encoding   encoding.Encoding
	BufferSize int
	ShowTitle  bool
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		BufferSize: report.DefaultBufferSize,
		ShowTitle:  true,
	}
}

// Reporter renders domain reports as fixed-width tables, on its writer or
// in the file named by the report.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer, config TableConfig) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: config,
	}
}

func (c *Reporter) Handle(ctx context.Context, r *domain.Report) (err error) {
	logger := zerolog.Ctx(ctx)

	set, err := c.columnSet(*logger, r)
	if err != nil {
		return fmt.Errorf("failed to build report columns: %w", err)
	}
	defer func() {
		if cerr := set.CloseReport(); err == nil {
			err = cerr
		}
	}()

	for _, record := range r.Records {
		set.UpdateColumnWidths(record)
	}

	if r.FileName != "" {
		logger.Info().Str("file", r.FileName).Int("records", len(r.Records)).Msg("writing report file")
	} else if c.config.ShowTitle && r.Title != "" {
		if _, err := fmt.Fprintf(c.writer, "\n%s\n\n", r.Title); err != nil {
			return fmt.Errorf("failed to write report title: %w", err)
		}
	}

	if err := set.CreateReportHeading(r.Guide); err != nil {
		return err
	}
	for _, record := range r.Records {
		if err := set.CreateReportRecord(record); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reporter) columnSet(logger zerolog.Logger, r *domain.Report) (*report.ColumnSet, error) {
	opts := []report.Option{
		report.WithOutput(c.writer),
		report.WithBufferSize(c.config.BufferSize),
		report.WithEncoding(c.config.Encoding),
		report.WithLogger(logger),
	}

	if len(r.Labels) != len(r.Fields) {
		return report.NewFromFieldsWithFile(r.Fields, r.FileName, opts...)
	}

	set := report.NewWithFile(r.FileName, opts...)
	for i, field := range r.Fields {
		col, err := report.NewColumn(i, field, r.Labels[i])
		if err != nil {
			return nil, err
		}
		if err := set.Add(col); err != nil {
			return nil, err
		}
	}
	return set, nil
}
