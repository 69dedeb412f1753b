package types

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	LexErrorTag   ErrorTag = "LexError"
	ParseErrorTag ErrorTag = "ParseError"
)

type Exception interface {
	error
	Exception() any
}

type Error struct {
	Tag   ErrorTag
	Err   error
	Extra map[string]any
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Tag)
	}

	var b strings.Builder
	b.WriteString(string(e.Tag))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Exception() any {
	var tags []any
	for err := error(e); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags":    tags,
		"message": e.Error(),
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}

// HasTag reports whether any *Error in err's chain carries tag.
func HasTag(err error, tag ErrorTag) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok && e.Tag == tag {
			return true
		}
	}
	return false
}
