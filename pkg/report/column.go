package report

import (
	"cmp"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultGuide is the character repeated under each label.
const DefaultGuide = '-'

// Column is one column of a fixed-width report.
type Column struct {
	position int
	field    string
	label    string
	selector FieldSelector

	// longest value observed so far
	maxWidth int
}

// NewColumn creates a column reading the named field of each record.
func NewColumn(position int, field, label string) (*Column, error) {
	if field == "" {
		return nil, invalidArgument("field selector must not be empty")
	}
	return newColumn(position, field, label, Field(field))
}

// NewSelectorColumn creates a column reading each record through selector.
func NewSelectorColumn(position int, selector FieldSelector, label string) (*Column, error) {
	if selector == nil {
		return nil, invalidArgument("field selector must not be nil")
	}
	name := label
	if named, ok := selector.(interface{ Name() string }); ok {
		name = named.Name()
	}
	return newColumn(position, name, label, selector)
}

func newColumn(position int, field, label string, selector FieldSelector) (*Column, error) {
	if position < 0 {
		return nil, invalidArgument("column position %d is negative", position)
	}
	if label == "" {
		return nil, invalidArgument("label of column %q must not be empty", field)
	}
	return &Column{
		position: position,
		field:    field,
		label:    label,
		selector: selector,
	}, nil
}

func (c *Column) Position() int {
	return c.position
}

func (c *Column) Field() string {
	return c.field
}

func (c *Column) Label() string {
	return c.label
}

// Width is the larger of the label length and the longest value seen.
func (c *Column) Width() int {
	return max(utf8.RuneCountInString(c.label), c.maxWidth)
}

// UpdateWidth records a candidate value length. Widths never shrink.
func (c *Column) UpdateWidth(n int) {
	if n > c.maxWidth {
		c.maxWidth = n
	}
}

// UpdateWidthFromRecord measures this column's value in record.
func (c *Column) UpdateWidthFromRecord(record any) {
	if record == nil {
		return
	}
	c.UpdateWidth(utf8.RuneCountInString(c.selector.DisplayString(record)))
}

func (c *Column) RenderLabel() string {
	return pad(c.label, c.Width())
}

// RenderGuide repeats guide Width times. A zero guide means DefaultGuide.
func (c *Column) RenderGuide(guide rune) string {
	if guide == 0 {
		guide = DefaultGuide
	}
	return strings.Repeat(string(guide), c.Width())
}

func (c *Column) RenderValue(record any) string {
	var value string
	if record != nil {
		value = c.selector.DisplayString(record)
	}
	return pad(value, c.Width())
}

// CompareTo orders columns by position. Anything other than a column is
// rejected with a TypeMismatchError.
func (c *Column) CompareTo(other any) (int, error) {
	o, err := c.asColumn(other)
	if err != nil {
		return 0, err
	}
	return Compare(c, o), nil
}

// Equal reports whether other is a column at the same position.
func (c *Column) Equal(other any) (bool, error) {
	o, err := c.asColumn(other)
	if err != nil {
		return false, err
	}
	return c.position == o.position, nil
}

func (c *Column) asColumn(other any) (*Column, error) {
	switch o := other.(type) {
	case *Column:
		if o != nil {
			return o, nil
		}
	case Column:
		return &o, nil
	}
	return nil, &TypeMismatchError{
		This:  fmt.Sprintf("%T", c),
		Other: fmt.Sprintf("%T", other),
	}
}

func (c *Column) String() string {
	return c.label
}

// Compare orders two columns by position.
func Compare(a, b *Column) int {
	return cmp.Compare(a.position, b.position)
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
