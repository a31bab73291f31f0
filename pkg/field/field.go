// Package field reads the leaf elements of the fixed-shape EDGAR forms.
// Required readers fail with an error naming the tag; optional readers
// return nil both when the tag is absent and when its text does not convert.
package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/saranrapjs/edgar-parser/pkg/value"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidValue = errors.New("invalid value")
)

// MissingError reports a required element that is absent or empty.
type MissingError struct {
	Tag string
}

func (e *MissingError) Error() string {
	return e.Tag + " not found"
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissingField
}

// ValueError reports a required element whose text does not convert.
type ValueError struct {
	Tag   string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("failed to parse %s from %q: %v", e.Tag, e.Value, e.Err)
}

func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// Child returns the required child element tag.
func Child(e *etree.Element, tag string) (*etree.Element, error) {
	c := xmlnode.FirstChild(e, tag)
	if c == nil {
		return nil, &MissingError{Tag: tag}
	}
	return c, nil
}

// String returns the text of the required child tag.
func String(e *etree.Element, tag string) (string, error) {
	text, ok := xmlnode.ChildText(e, tag)
	if !ok {
		return "", &MissingError{Tag: tag}
	}
	return text, nil
}

// OptString returns the text of child tag, or nil.
func OptString(e *etree.Element, tag string) *string {
	text, ok := xmlnode.ChildText(e, tag)
	if !ok {
		return nil
	}
	return &text
}

func Int32(e *etree.Element, tag string) (int32, error) {
	return required(e, tag, parseInt32)
}

func OptInt32(e *etree.Element, tag string) *int32 {
	return optional(e, tag, parseInt32)
}

func Int64(e *etree.Element, tag string) (int64, error) {
	return required(e, tag, parseInt64)
}

func OptInt64(e *etree.Element, tag string) *int64 {
	return optional(e, tag, parseInt64)
}

// Bool reads a required yes/no flag; see value.ParseFlag.
func Bool(e *etree.Element, tag string) (bool, error) {
	return required(e, tag, parseFlag)
}

func OptBool(e *etree.Element, tag string) *bool {
	return optional(e, tag, parseFlag)
}

// Ints collects the comma separated integers of every child tag. Pieces
// that are not integers are skipped.
func Ints(e *etree.Element, tag string) []int32 {
	var out []int32
	for _, c := range xmlnode.Children(e, tag) {
		text, ok := xmlnode.Text(c)
		if !ok {
			continue
		}
		for _, piece := range strings.Split(text, ",") {
			if n, err := parseInt32(piece); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// Value reads child tag with value.Infer, or nil when it has no text.
func Value(e *etree.Element, tag string) *value.Value {
	text, ok := xmlnode.ChildText(e, tag)
	if !ok {
		return nil
	}
	v := value.Infer(text)
	return &v
}

func required[T any](e *etree.Element, tag string, parse func(string) (T, error)) (T, error) {
	var zero T
	text, ok := xmlnode.ChildText(e, tag)
	if !ok {
		return zero, &MissingError{Tag: tag}
	}
	v, err := parse(text)
	if err != nil {
		return zero, &ValueError{Tag: tag, Value: text, Err: err}
	}
	return v, nil
}

func optional[T any](e *etree.Element, tag string, parse func(string) (T, error)) *T {
	text, ok := xmlnode.ChildText(e, tag)
	if !ok {
		return nil
	}
	v, err := parse(text)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	return int32(n), err
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parseFlag(s string) (bool, error) {
	return value.ParseFlag(strings.TrimSpace(s))
}
