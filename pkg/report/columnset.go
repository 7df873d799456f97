package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

const (
	// DefaultStripText is removed from field names when labels are derived.
	DefaultStripText = "Display"

	// DefaultBufferSize is the size of the buffer in front of a report file.
	DefaultBufferSize = 8192

	fieldSeparator = " "
)

// LabelRule selects which end of a field name DeriveLabel strips.
type LabelRule int

const (
	RemoveFromBeginning LabelRule = iota
	RemoveFromEnd
)

// Opener creates or truncates the report file.
type Opener func(name string) (io.WriteCloser, error)

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// Option configures a ColumnSet.
type Option func(*ColumnSet)

// WithOutput sets the console writer used when no file name is given.
func WithOutput(w io.Writer) Option {
	return func(s *ColumnSet) {
		if w != nil {
			s.out = w
		}
	}
}

// WithOpener replaces the function used to open the report file.
func WithOpener(open Opener) Option {
	return func(s *ColumnSet) {
		if open != nil {
			s.open = open
		}
	}
}

func WithBufferSize(size int) Option {
	return func(s *ColumnSet) {
		if size > 0 {
			s.bufferSize = size
		}
	}
}

// WithEncoding encodes the report file. Console output is left as is.
func WithEncoding(enc encoding.Encoding) Option {
	return func(s *ColumnSet) {
		s.encoding = enc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *ColumnSet) {
		s.logger = logger
	}
}

// WithLabelRule changes how NewFromFields derives labels from field names.
func WithLabelRule(stripText string, rule LabelRule) Option {
	return func(s *ColumnSet) {
		s.stripText = stripText
		s.labelRule = rule
	}
}

// ColumnSet renders records as aligned rows. A report is produced by
// calling UpdateColumnWidths for every record, then CreateReportHeading,
// then CreateReportRecord for every record and finally CloseReport.
//
// A ColumnSet is not safe for concurrent use.
type ColumnSet struct {
	columns  []*Column
	fileName string

	out        io.Writer
	open       Opener
	bufferSize int
	encoding   encoding.Encoding
	logger     zerolog.Logger
	stripText  string
	labelRule  LabelRule

	stage   Stage
	sink    *fileSink
	headed  bool
	closed  bool
	aborted bool
}

// New creates an empty set writing to the console.
func New(opts ...Option) *ColumnSet {
	s := &ColumnSet{
		out:        os.Stdout,
		open:       createFile,
		bufferSize: DefaultBufferSize,
		logger:     zerolog.Nop(),
		stripText:  DefaultStripText,
		labelRule:  RemoveFromBeginning,
		stage:      StageIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewWithFile creates an empty set writing to fileName.
func NewWithFile(fileName string, opts ...Option) *ColumnSet {
	s := New(opts...)
	s.fileName = fileName
	return s
}

// NewFromFields creates one column per field name, at positions 0..N-1,
// with labels derived by DeriveLabel.
func NewFromFields(fields []string, opts ...Option) (*ColumnSet, error) {
	return NewFromFieldsWithFile(fields, "", opts...)
}

func NewFromFieldsWithFile(fields []string, fileName string, opts ...Option) (*ColumnSet, error) {
	s := NewWithFile(fileName, opts...)
	for i, field := range fields {
		col, err := NewColumn(i, field, DeriveLabel(field, s.stripText, s.labelRule))
		if err != nil {
			return nil, fmt.Errorf("failed to create column for field %q: %w", field, err)
		}
		if err := s.Add(col); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DeriveLabel strips stripText from one end of fieldName.
func DeriveLabel(fieldName, stripText string, rule LabelRule) string {
	if stripText == "" {
		return fieldName
	}
	switch rule {
	case RemoveFromBeginning:
		if strings.HasPrefix(fieldName, stripText) {
			return fieldName[len(stripText):]
		}
	case RemoveFromEnd:
		if strings.HasSuffix(fieldName, stripText) {
			return fieldName[:len(fieldName)-len(stripText)]
		}
	}
	return fieldName
}

// Add inserts col keeping the set ordered by position.
func (s *ColumnSet) Add(col *Column) error {
	if col == nil {
		return invalidArgument("column must not be nil")
	}
	i, found := slices.BinarySearchFunc(s.columns, col, Compare)
	if found {
		return invalidArgument("column position %d is already taken by %q", col.position, s.columns[i].label)
	}
	s.columns = slices.Insert(s.columns, i, col)
	return nil
}

func (s *ColumnSet) Columns() []*Column {
	return slices.Clone(s.columns)
}

func (s *ColumnSet) Len() int {
	return len(s.columns)
}

func (s *ColumnSet) FileName() string {
	return s.fileName
}

func (s *ColumnSet) Stage() Stage {
	return s.stage
}

// UpdateColumnWidths measures record in every column. Widths are frozen
// once the heading has been written.
func (s *ColumnSet) UpdateColumnWidths(record any) {
	if s.headed {
		return
	}
	for _, col := range s.columns {
		col.UpdateWidthFromRecord(record)
	}
}

// LabelRow joins the padded labels.
func (s *ColumnSet) LabelRow() string {
	return s.row(func(c *Column) string { return c.RenderLabel() })
}

// GuideRow joins one guide per column.
func (s *ColumnSet) GuideRow(guide rune) string {
	return s.row(func(c *Column) string { return c.RenderGuide(guide) })
}

// DetailRow joins the padded values of record.
func (s *ColumnSet) DetailRow(record any) string {
	return s.row(func(c *Column) string { return c.RenderValue(record) })
}

func (s *ColumnSet) row(render func(*Column) string) string {
	parts := make([]string, len(s.columns))
	for i, col := range s.columns {
		parts[i] = render(col)
	}
	return strings.Join(parts, fieldSeparator)
}

// CreateReportHeading writes the label row and the guide row. When the set
// has a file name the file is created (or truncated) first and kept open
// for the detail rows.
func (s *ColumnSet) CreateReportHeading(guide rune) error {
	if err := s.checkWritable(); err != nil {
		return err
	}

	if s.fileName != "" && s.sink == nil {
		s.stage = StageOpening
		sink, err := s.openSink()
		if err != nil {
			return s.abort(err)
		}
		s.sink = sink
		s.logger.Debug().Str("file", s.fileName).Msg("report file opened")
	}

	s.stage = StageWritingHeader
	if err := s.writeLine(s.LabelRow()); err != nil {
		return s.abort(err)
	}

	s.stage = StageWritingGuide
	if err := s.writeLine(s.GuideRow(guide)); err != nil {
		return s.abort(err)
	}

	s.headed = true
	return nil
}

// CreateReportRecord writes one detail row to the open file, or to the
// console when no file was opened.
func (s *ColumnSet) CreateReportRecord(record any) error {
	if err := s.checkWritable(); err != nil {
		return err
	}

	s.stage = StageWritingDetail
	if err := s.writeLine(s.DetailRow(record)); err != nil {
		return s.abort(err)
	}
	return nil
}

// CloseReport flushes and closes the report file. Calling it when no file
// is open does nothing.
func (s *ColumnSet) CloseReport() error {
	if s.sink == nil {
		return nil
	}

	s.stage = StageClosing
	sink := s.sink
	s.sink = nil
	s.closed = true

	if err := sink.close(); err != nil {
		ioErr := s.wrap(err)
		s.stage = StageAborted
		s.aborted = true
		s.logger.Error().Err(err).Str("file", s.fileName).Msg("failed to close report file")
		return ioErr
	}

	s.stage = StageIdle
	s.logger.Debug().Str("file", s.fileName).Msg("report file closed")
	return nil
}

func (s *ColumnSet) checkWritable() error {
	switch {
	case s.aborted:
		return s.wrap(ErrReportAborted)
	case s.closed && s.fileName != "":
		return s.wrap(os.ErrClosed)
	}
	return nil
}

func (s *ColumnSet) openSink() (*fileSink, error) {
	f, err := s.open(s.fileName)
	if err != nil {
		return nil, err
	}
	return newFileSink(f, s.encoding, s.bufferSize), nil
}

// writeLine writes one row. File rows are flushed before returning so that
// a failing file is reported at the stage of the row.
func (s *ColumnSet) writeLine(line string) error {
	if s.sink != nil {
		return s.sink.writeLine(line)
	}
	_, err := fmt.Fprintln(s.out, line)
	return err
}

// abort wraps err with the current stage and releases the file.
func (s *ColumnSet) abort(err error) error {
	ioErr := s.wrap(err)

	if s.sink != nil {
		if cerr := s.sink.release(); cerr != nil {
			s.logger.Debug().Err(cerr).Str("file", s.fileName).Msg("error releasing report file")
		}
		s.sink = nil
		s.closed = true
	}
	s.aborted = true
	s.logger.Error().Err(err).
		Str("file", s.fileName).
		Stringer("stage", ioErr.Stage).
		Msg("report aborted")
	s.stage = StageAborted
	return ioErr
}

func (s *ColumnSet) wrap(err error) *IOError {
	return &IOError{
		Kind:     faultKind(err, s.stage),
		Stage:    s.stage,
		FileName: s.fileName,
		Err:      err,
	}
}

// fileSink is a buffered, optionally encoded, report file.
type fileSink struct {
	file    io.WriteCloser
	encoder io.Writer
	buf     *bufio.Writer
}

func newFileSink(file io.WriteCloser, enc encoding.Encoding, size int) *fileSink {
	var w io.Writer = file
	var encoder io.Writer
	if enc != nil {
		encoder = enc.NewEncoder().Writer(file)
		w = encoder
	}
	return &fileSink{
		file:    file,
		encoder: encoder,
		buf:     bufio.NewWriterSize(w, size),
	}
}

func (f *fileSink) writeLine(line string) error {
	if _, err := f.buf.WriteString(line); err != nil {
		return err
	}
	if err := f.buf.WriteByte('\n'); err != nil {
		return err
	}
	return f.buf.Flush()
}

// close flushes everything and closes the file. The file is closed even
// when flushing fails.
func (f *fileSink) close() error {
	var errs []error
	if err := f.buf.Flush(); err != nil {
		errs = append(errs, err)
	}
	if c, ok := f.encoder.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := f.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// release closes the file without flushing pending output.
func (f *fileSink) release() error {
	return f.file.Close()
}
