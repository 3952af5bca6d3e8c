package config

import (
	"fmt"
)

// TypeError reports a value of the wrong kind under Key
type TypeError struct {
	Key      string
	Expected string
	Got      string
	Line     int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("line %d: %s: expected %s, got %s", e.Line, keyName(e.Key), e.Expected, e.Got)
}

// ArityError reports a list with the wrong number of entries
type ArityError struct {
	Key  string
	Want int
	Got  int
	Line int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("line %d: %s: expected %d entries, got %d", e.Line, keyName(e.Key), e.Want, e.Got)
}

// UnknownKeyError reports a key the document format does not define
type UnknownKeyError struct {
	Key  string
	Line int
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("line %d: unknown key %q", e.Line, e.Key)
}

// ColorError reports an unrecognized color or color mode name
type ColorError struct {
	Key   string
	Value string
	Line  int
	Err   error
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, keyName(e.Key), e.Err)
}

func (e *ColorError) Unwrap() error { return e.Err }

func keyName(k string) string {
	if k == "" {
		return "document"
	}
	return k
}
