package cases

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/spf13/cast"
)

const (
	// Header must be the first line of an edge case file.
	Header = "TestDate\tComment"

	ExpectedFieldCount = 2

	posTestDate = 0
	posComment  = 1
)

var (
	ErrInputFileMissing  = errors.New("edge case file name is missing")
	ErrInputFileNotFound = errors.New("edge case file not found")
	ErrBadFile           = errors.New("malformed edge case file")

	// ErrNonexistentTime is returned for wall clock times skipped by a
	// daylight saving transition.
	ErrNonexistentTime = errors.New("time does not exist in zone")
)

// RecordError reports a record with the wrong number of fields.
type RecordError struct {
	File     string
	Record   int
	Content  string
	Fields   int
	Expected int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("file %s, record %d (%q) has %d fields, expected %d",
		e.File, e.Record, e.Content, e.Fields, e.Expected)
}

func (e *RecordError) Unwrap() error {
	return ErrBadFile
}

// DateError reports a test date that could not be parsed.
type DateError struct {
	File   string
	Record int
	Value  string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("file %s, record %d: %q is not a valid date", e.File, e.Record, e.Value)
}

func (e *DateError) Unwrap() error {
	return ErrBadFile
}

var usLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

// Load reads the edge case file at path. Dates without an explicit offset
// are read in loc.
func Load(path string, loc *time.Location) ([]*domain.ConversionCase, error) {
	if path == "" {
		return nil, ErrInputFileMissing
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open edge case file: %w", err)
	}
	defer f.Close()

	return Parse(f, path, loc)
}

// Parse reads edge cases from r; name is used in error messages.
func Parse(r io.Reader, name string, loc *time.Location) ([]*domain.ConversionCase, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return nil, fmt.Errorf("%w: %s is empty", ErrBadFile, name)
	}
	header := strings.TrimSuffix(strings.TrimPrefix(scanner.Text(), "\ufeff"), "\r")
	if header != Header {
		return nil, fmt.Errorf("%w: %s must start with %q, found %q", ErrBadFile, name, Header, header)
	}

	var list []*domain.ConversionCase
	for record := 1; scanner.Scan(); record++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != ExpectedFieldCount {
			return nil, &RecordError{
				File:     name,
				Record:   record,
				Content:  line,
				Fields:   len(fields),
				Expected: ExpectedFieldCount,
			}
		}

		date, err := ParseDate(fields[posTestDate], loc)
		skipped := errors.Is(err, ErrNonexistentTime)
		if err != nil && !skipped {
			return nil, &DateError{File: name, Record: record, Value: fields[posTestDate]}
		}

		list = append(list, &domain.ConversionCase{
			CaseNumber:  len(list) + 1,
			Comment:     fields[posComment],
			RawTestDate: fields[posTestDate],
			TestDate:    date,
			Skipped:     skipped,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s has no test cases", ErrBadFile, name)
	}
	return list, nil
}

// ParseDate reads s in loc, accepting ISO and US style layouts. A wall
// clock time that loc skips is returned normalized, together with
// ErrNonexistentTime.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := parseIn(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	t = t.In(loc)

	// the same text read as UTC keeps the literal wall clock
	literal, err := parseIn(s, time.UTC)
	if err == nil && !literal.Equal(t) && !sameWallClock(t, literal) {
		return t, fmt.Errorf("%w: %s in %s", ErrNonexistentTime, s, loc)
	}
	return t, nil
}

func parseIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := cast.ToTimeInDefaultLocationE(s, loc); err == nil {
		return t, nil
	}

	var lastErr error
	for _, layout := range usLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}
